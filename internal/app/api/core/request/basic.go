// Package request provides functions to extract parameters from the request.
package request

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// CheckPrivateProxy can be passed to ClientIp to trust all proxies with a private address.
const CheckPrivateProxy = "PRIVATE"

// maxBodySize limits JSON request bodies.
const maxBodySize = 1 << 20

// Path returns the trimmed value of the named path parameter.
func Path(r *http.Request, name string) string {
	return strings.TrimSpace(r.PathValue(name))
}

// FormRaw returns the untrimmed value of the named form parameter, used for secrets.
func FormRaw(r *http.Request, name string) string {
	return r.PostFormValue(name)
}

// Form returns the trimmed value of the named form parameter.
func Form(r *http.Request, name string) string {
	return strings.TrimSpace(FormRaw(r, name))
}

// FormInt returns the named form parameter as integer.
func FormInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(Form(r, name))
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", name, err)
	}
	return v, nil
}

// FormBool returns true for a checked checkbox ("on", "true" or "1").
func FormBool(r *http.Request, name string) bool {
	switch strings.ToLower(Form(r, name)) {
	case "on", "true", "1":
		return true
	default:
		return false
	}
}

// ClientIp returns the client IP address.
//
// The X-Real-Ip and X-Forwarded-For headers are only used if the direct peer is one of the
// allowed proxies, or a private address and CheckPrivateProxy is allowed.
func ClientIp(r *http.Request, allowedProxyIp ...string) string {
	ip := parseHostIp(r.RemoteAddr)
	if ip == nil {
		return ""
	}

	trusted := slices.Contains(allowedProxyIp, ip.String()) ||
		(ip.IsPrivate() && slices.Contains(allowedProxyIp, CheckPrivateProxy))
	if !trusted {
		return ip.String()
	}

	forwarded := r.Header.Get("X-Real-Ip")
	if forwarded == "" {
		// the left-most entry is the original client
		forwarded, _, _ = strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	}
	if realIp := parseHostIp(forwarded); realIp != nil {
		return realIp.String()
	}

	return ip.String()
}

func parseHostIp(addr string) net.IP {
	addr = strings.TrimSpace(addr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	return net.ParseIP(addr)
}

// BodyJson decodes the JSON request body into target and closes the body.
// Unknown fields and bodies larger than 1 MiB are rejected.
func BodyJson(w http.ResponseWriter, r *http.Request, target any) error {
	defer func() {
		_ = r.Body.Close()
	}()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("request body must contain a single JSON value")
	}
	return nil
}
