// Package rfconfig loads the destination and connection policy config that
// the CLI surface hands down to internal/rfclient: host, port, optional
// Basic-auth credentials, and the use-TLS/verify-certificate toggles named
// in the connection policy. It follows the teacher's
// viper-plus-validator shape (certificates/config.go's Config.Validate).
package rfconfig

import (
	"fmt"

	libval "github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/sabouaram/redpath/duration"
	liberr "github.com/sabouaram/redpath/errors"
	"github.com/sabouaram/redpath/internal/rfconn"
)

// HostConfig is the supplemented HostConnectData from the original's
// rtool.cpp: host/port plus optional Basic-auth credentials, defaulted the
// same way (port 443, TLS on, verification on).
type HostConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	UseTLS   bool   `mapstructure:"tls"`
	Verify   bool   `mapstructure:"verifyServer"`

	// Timeout bounds each connection phase (dial, TLS handshake, request
	// write, response read), in duration.Parse's "5d23h15m13s"-style
	// notation. Parsed lazily by Policy() rather than at unmarshal time, so
	// a bad value surfaces as a validation error instead of a silent zero.
	Timeout string `mapstructure:"timeout"`
}

// Validate runs go-playground/validator over the struct tags and reports
// every failing field, matching certificates/config.go's error-assembly
// style.
func (h *HostConfig) Validate() liberr.Error {
	err := ErrorValidate.Error(nil)

	if er := libval.New().Struct(h); er != nil {
		for _, e := range er.(libval.ValidationErrors) {
			//nolint goerr113
			err.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", e.StructNamespace(), e.ActualTag()))
		}
	}

	if h.Timeout != "" {
		if _, perr := duration.Parse(h.Timeout); perr != nil {
			err.Add(fmt.Errorf("config field 'HostConfig.Timeout' is not a valid duration: %w", perr))
		}
	}

	if err.HasParent() {
		return err
	}

	return nil
}

// Policy converts the loaded config into the rfconn.ConnectPolicy the
// client façade wires through to every connection. An empty or invalid
// Timeout (already rejected by Validate) falls back to the connection
// package's own default.
func (h *HostConfig) Policy() rfconn.ConnectPolicy {
	policy := rfconn.ConnectPolicy{
		UseTLS:                  h.UseTLS,
		VerifyServerCertificate: h.Verify,
	}

	if d, err := duration.Parse(h.Timeout); err == nil {
		policy.OperationTimeout = d.Time()
	}

	return policy
}

// Load reads host configuration from viper, applying the same defaults as
// the original's HostConnectData struct (port 443, TLS on, verification
// on) before struct-level validation.
func Load(v *viper.Viper) (*HostConfig, liberr.Error) {
	v.SetDefault("port", "443")
	v.SetDefault("tls", true)
	v.SetDefault("verifyServer", true)
	v.SetDefault("timeout", "30s")

	cfg := &HostConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, ErrorValidate.Error(err)
	}

	if e := cfg.Validate(); e != nil {
		return nil, e
	}

	return cfg, nil
}
