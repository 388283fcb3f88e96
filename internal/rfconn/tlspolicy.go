package rfconn

import (
	"crypto/tls"
	"time"

	"github.com/sabouaram/redpath/certificates"
	tlscpr "github.com/sabouaram/redpath/certificates/cipher"
	tlsvrs "github.com/sabouaram/redpath/certificates/tlsversion"
)

// cipherSuite is the exact, ordered cipher list required of every TLS
// connection this tool opens. It intentionally does not reuse
// certificates/cipher's own default List(): that list both omits the two
// DHE-RSA suites required here and includes two RSA-only suites that are
// not. ECDHE suites are listed before DHE so the server's preference for
// forward-secret-over-plain-RSA key exchange holds even if a peer ignores
// PreferServerCipherSuites.
//
// crypto/tls declares no constants for the two DHE-RSA suites, so they are
// written as their IANA ids. crypto/tls implements no DHE key exchange and
// ignores TLS 1.3 entries in Config.CipherSuites, so those five entries do
// not change what a handshake offers.
var cipherSuite = []tlscpr.Cipher{
	tlscpr.Cipher(tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256),
	tlscpr.Cipher(tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256),
	tlscpr.Cipher(tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384),
	tlscpr.Cipher(tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384),
	tlscpr.Cipher(tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305),
	tlscpr.Cipher(tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305),
	tlscpr.Cipher(0x009E), // TLS_DHE_RSA_WITH_AES_128_GCM_SHA256
	tlscpr.Cipher(0x009F), // TLS_DHE_RSA_WITH_AES_256_GCM_SHA384
	tlscpr.Cipher(tls.TLS_AES_128_GCM_SHA256),
	tlscpr.Cipher(tls.TLS_AES_256_GCM_SHA384),
	tlscpr.Cipher(tls.TLS_CHACHA20_POLY1305_SHA256),
}

// ConnectPolicy mirrors the wire-level policy knobs named in the
// destination's connection settings: whether to use TLS at all, whether to
// verify the peer certificate, and the per-operation timeout a connection
// allows each dial/request/handshake phase. A zero OperationTimeout means
// "use the built-in default" (see connection.go).
type ConnectPolicy struct {
	UseTLS                  bool
	VerifyServerCertificate bool
	OperationTimeout        time.Duration
}

// DefaultConnectPolicy matches the documented defaults: TLS on, verification on.
func DefaultConnectPolicy() ConnectPolicy {
	return ConnectPolicy{UseTLS: true, VerifyServerCertificate: true}
}

// buildTLSConfig returns a *tls.Config restricted to TLS 1.2/1.3 and the
// fixed cipherSuite, with SNI set to the destination host.
//
// certificates.TLSConfig.TlsConfig always returns InsecureSkipVerify:
// false; VerifyServerCertificate == false is honored by flipping that flag
// on the returned config, since the certificates package itself exposes no
// setter for it (adding one would mean forking the interface for one
// field that every other consumer of that package wants left alone).
func buildTLSConfig(policy ConnectPolicy, serverName string) *tls.Config {
	cfg := certificates.New()
	cfg.SetVersionMin(tlsvrs.VersionTLS12)
	cfg.SetVersionMax(tlsvrs.VersionTLS13)
	cfg.SetCipherList(cipherSuite)

	out := cfg.TlsConfig(serverName)

	if !policy.VerifyServerCertificate {
		/* #nosec */
		out.InsecureSkipVerify = true
	}

	return out
}
