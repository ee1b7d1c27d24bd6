package fetch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrorKind classifies a transport failure.
type ErrorKind string

const (
	KindTimeout    ErrorKind = "timeout"
	KindSecurity   ErrorKind = "security"
	KindUnexpected ErrorKind = "unexpected_error"
)

// TransportError is returned when no HTTP response was received.
type TransportError struct {
	URL  string
	Kind ErrorKind
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a TransportError anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return "", false
}

func classify(rawURL string, err error) *TransportError {
	return &TransportError{URL: rawURL, Kind: kindFor(err), Err: err}
}

func kindFor(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	var (
		unknownAuthority x509.UnknownAuthorityError
		hostnameErr      x509.HostnameError
		invalidCert      x509.CertificateInvalidError
		recordHeader     tls.RecordHeaderError
		certVerify       *tls.CertificateVerificationError
	)
	switch {
	case errors.As(err, &unknownAuthority),
		errors.As(err, &hostnameErr),
		errors.As(err, &invalidCert),
		errors.As(err, &recordHeader),
		errors.As(err, &certVerify):
		return KindSecurity
	}
	if strings.Contains(strings.ToLower(err.Error()), "tls") {
		return KindSecurity
	}
	return KindUnexpected
}
