package pkg

import (
	"crypto/tls"
	"fmt"
	nurl "net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTP simplifies making requests to Karaf web endpoints. Handles authentication.
type HTTP struct {
	baseURL  string
	user     string
	password string

	Timeout         time.Duration
	Debug           bool
	IgnoreSSLErrors bool
}

func NewHTTP(kit *Kit, baseURL string) *HTTP {
	cv := kit.config.Values()

	return &HTTP{
		baseURL:  baseURL,
		user:     cv.Karaf.User,
		password: cv.Karaf.Password,

		Timeout:         cv.HTTP.Timeout,
		Debug:           cv.HTTP.Debug,
		IgnoreSSLErrors: cv.HTTP.IgnoreSSLErrors,
	}
}

func (h *HTTP) Client() *resty.Client {
	client := resty.New()
	client.SetBaseURL(h.baseURL)
	if h.user != "" {
		client.SetBasicAuth(h.user, h.password)
	}
	client.SetDoNotParseResponse(true)
	client.SetTimeout(h.Timeout)
	client.SetDebug(h.Debug)
	if h.IgnoreSSLErrors {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	return client
}

func (h *HTTP) Request() *resty.Request {
	return h.Client().R()
}

func (h *HTTP) RequestFormData(props map[string]any) *resty.Request {
	request := h.Request()
	for k, v := range props {
		request.FormData.Add(k, fmt.Sprintf("%v", v))
	}
	return request
}

func (h *HTTP) BaseURL() string {
	return h.baseURL
}

func (h *HTTP) Hostname() string {
	urlConfig, _ := nurl.Parse(h.baseURL)
	return urlConfig.Hostname()
}

func (h *HTTP) SetCredentials(user, password string) {
	h.user = user
	h.password = password
}
