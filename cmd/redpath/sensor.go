package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSensorCmd() *cobra.Command {
	sensor := &cobra.Command{
		Use:   "sensor",
		Short: "Sensor-oriented convenience commands",
	}

	sensor.AddCommand(newSensorListCmd())

	return sensor
}

// newSensorListCmd mirrors the original's SensorList command, which is
// itself left unimplemented (rtool.cpp's sensor_list() prints a
// "not implemented" message and returns). SPEC_FULL.md §6 keeps this as a
// stub rather than inventing sensor-enumeration semantics the original
// never specified.
func newSensorListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sensors (not implemented)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "sensor list: not implemented")
			return nil
		},
	}
}
