package httpclient

import "github.com/skillsenselab/diascribe/security"

// TLSConfig aliases the shared TLS configuration so client configs can
// reference it without importing the security package directly.
type TLSConfig = security.TLSConfig
