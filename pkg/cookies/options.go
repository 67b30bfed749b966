package cookies

import (
	"net/http"
	"net/url"
	"time"
)

// Options are the attributes of a cookie write.
type Options struct {
	Path     string
	Domain   string
	Expires  time.Time
	MaxAge   int
	Secure   bool
	HTTPOnly bool
	SameSite http.SameSite
}

// Cookie builds the Set-Cookie representation of name=value with these
// attributes. The value is URL-encoded. A nil receiver yields a bare cookie.
func (o *Options) Cookie(name, value string) *http.Cookie {
	c := &http.Cookie{Name: name, Value: encodeValue(value)}
	if o == nil {
		return c
	}
	c.Path = o.Path
	c.Domain = o.Domain
	c.Expires = o.Expires
	c.MaxAge = o.MaxAge
	c.Secure = o.Secure
	c.HttpOnly = o.HTTPOnly
	c.SameSite = o.SameSite
	return c
}

// expired reports whether writing with these options deletes the cookie.
func (o *Options) expired(now time.Time) bool {
	if o == nil {
		return false
	}
	if o.MaxAge < 0 {
		return true
	}
	return !o.Expires.IsZero() && !o.Expires.After(now)
}

func (o *Options) clone() *Options {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}

func encodeValue(s string) string {
	return url.PathEscape(s)
}

func decodeValue(s string) string {
	if d, err := url.PathUnescape(s); err == nil {
		return d
	}
	return s
}
