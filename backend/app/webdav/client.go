// Package webdav stores avatar files on a WebDAV share through gowebdav.
package webdav

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/studio-b12/gowebdav"
)

var ErrNotFound = errors.New("webdav: not found")

type Client struct {
	dav *gowebdav.Client
}

func NewClient(baseURL, username, password string, timeout time.Duration) *Client {
	dav := gowebdav.NewClient(strings.TrimRight(baseURL, "/"), username, password)
	if timeout > 0 {
		dav.SetTimeout(timeout)
	}
	return &Client{dav: dav}
}

// MkdirAll creates every collection along dir. Existing collections are fine.
func (c *Client) MkdirAll(dir string) error {
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return nil
	}
	return mapErr("mkdir "+dir, c.dav.MkdirAll(dir, 0o755))
}

func (c *Client) Put(p string, data []byte) error {
	return mapErr("put "+p, c.dav.Write(p, data, 0o644))
}

func (c *Client) Get(p string) ([]byte, error) {
	b, err := c.dav.Read(p)
	if err != nil {
		return nil, mapErr("get "+p, err)
	}
	return b, nil
}

// Delete removes p. Removing a missing file is not an error.
func (c *Client) Delete(p string) error {
	return mapErr("delete "+p, c.dav.Remove(p))
}

func mapErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case gowebdav.IsErrNotFound(err), errors.Is(err, os.ErrNotExist):
		return ErrNotFound
	default:
		return fmt.Errorf("webdav %s: %w", op, err)
	}
}
