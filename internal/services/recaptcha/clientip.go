package recaptcha

// clientIPHeaders is checked in order before the direct remote address.
//
// These headers are supplied by the client or by any proxy in front of us, so
// they can be spoofed. The order is kept because the assessment API only uses
// the address as a signal; deployments behind a trusted proxy should strip
// them at the edge.
var clientIPHeaders = []string{
	"Client-IP",
	"X-Forwarded-For",
	"X-Forwarded",
	"X-Cluster-Client-IP",
	"Forwarded-For",
	"Forwarded",
}

// ClientIP returns the first non-empty header value from clientIPHeaders,
// then remoteAddr, then UnknownIP. Header values are passed through as-is,
// so a proxy chain stays a comma separated list.
func ClientIP(header func(string) string, remoteAddr string) string {
	for _, name := range clientIPHeaders {
		if v := header(name); v != "" {
			return v
		}
	}
	if remoteAddr != "" {
		return remoteAddr
	}
	return UnknownIP
}
