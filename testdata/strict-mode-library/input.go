// Package publicapi has no importers, so strict mode reports its unused API.
package publicapi

type Client struct {
	base string
}

func NewClient(base string) *Client {
	return &Client{base: base}
}

func (c *Client) URL(path string) string {
	return c.base + path
}

func Default() *Client {
	return NewClient("https://example.com")
}

func (c *Client) [|Close|]() error {
	return nil
}

var defaultURL = Default().URL("/")

func [|Version|]() string {
	return "v1"
}
