package httpclient

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for HTTP client failure modes.
// Callers should use errors.Is() to check for these.
var (
	// ErrConnect indicates the service refused or never accepted the
	// connection.
	ErrConnect = errors.New("httpclient: connection failed")

	// ErrDNS indicates a DNS resolution failure for the service host.
	ErrDNS = errors.New("httpclient: DNS resolution failed")

	// ErrTLS indicates a TLS handshake or certificate verification failure.
	ErrTLS = errors.New("httpclient: TLS handshake failed")

	// ErrTimeout indicates the request ran past its deadline.
	ErrTimeout = errors.New("httpclient: request timed out")
)

// Classify wraps a transport error with the matching sentinel, keeping the
// original in the chain. Errors it does not recognize are returned as is.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var dnsErr *net.DNSError
	var certErr *tls.CertificateVerificationError
	var unknownAuth x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	var recordErr tls.RecordHeaderError
	var netErr net.Error
	var opErr *net.OpError

	switch {
	case errors.As(err, &dnsErr):
		return fmt.Errorf("%w: %w", ErrDNS, err)
	case errors.As(err, &certErr), errors.As(err, &unknownAuth), errors.As(err, &hostErr), errors.As(err, &recordErr):
		return fmt.Errorf("%w: %w", ErrTLS, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	case errors.As(err, &opErr) && opErr.Op == "dial":
		return fmt.Errorf("%w: %w", ErrConnect, err)
	}
	return err
}
