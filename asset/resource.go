package asset

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// The Resource type wraps a streamable file or remote resource.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Returns the file name of this resource.
func (r *Resource) Name() string {
	return filepath.Base(r.url.Path)
}

// Returns true if the Resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Resolve a path relative to this resource without opening it. The returned
// string can later be passed to NewResource with a nil parent.
func (r *Resource) Resolve(pathToResource string) (string, error) {
	u, err := resolveURL(pathToResource, r)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// Build the URL for a resource. If relTo is specified and pathToResource does
// not define a scheme, the path is generated by concatenating the base path
// of relTo and pathToResource.
func resolveURL(pathToResource string, relTo *Resource) (*url.URL, error) {
	// Replace backslashes with forward slashes and try parsing as a URL
	u, err := url.Parse(strings.Replace(pathToResource, `\`, `/`, -1))
	if err != nil {
		return nil, err
	}

	if u.Scheme != "" || relTo == nil || filepath.IsAbs(u.Path) {
		return u, nil
	}

	// This is a relative url; clone the parent url and adjust its path
	path := u.Path
	u, _ = url.Parse(relTo.url.String())
	prefix := u.Path
	if u.Scheme == "" {
		prefix, err = filepath.Abs(relTo.url.String())
		if err != nil {
			return nil, fmt.Errorf("resource: could not detect abs path for %s; %s", relTo.url.String(), err.Error())
		}
	}
	u.Path = strings.TrimSuffix(filepath.Dir(prefix), "/") + "/" + path
	return u, nil
}

// Create a new Resource data stream. Relative paths are resolved against
// relTo when it is not nil.
//
// This function can handle http/https URLs by delegating to the net/http package.
// The caller must make sure to close the returned resource to prevent leaks.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	u, err := resolveURL(pathToResource, relTo)
	if err != nil {
		return nil, err
	}

	var reader io.ReadCloser
	switch u.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(u.Path))
		if err != nil {
			return nil, err
		}
	case "http", "https":
		resp, err := http.Get(u.String())
		if err != nil {
			return nil, fmt.Errorf("resource: could not fetch '%s': %s", u.String(), err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("resource: could not fetch '%s': status %d", u.String(), resp.StatusCode)
		}
		reader = resp.Body
	default:
		return nil, fmt.Errorf("resource: unsupported scheme '%s'", u.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        u,
	}, nil
}

// Create a resource from a reader.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	u, _ := url.Parse(name)
	return &Resource{
		ReadCloser: io.NopCloser(source),
		url:        u,
	}
}
