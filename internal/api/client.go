package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"lexvault/internal/crypto"
	"lexvault/internal/domain"
)

// Client talks to a vaultd server.
type Client struct {
	Base string
	HTTP *http.Client
}

// NewClient returns a client for the server at base, e.g. http://127.0.0.1:8443.
func NewClient(base string) *Client {
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: http.DefaultClient}
}

// Health reports the server's key generation state.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	// A pending server answers 503 with a valid body.
	resp, err := c.do(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("vaultd get /healthz: %s", resp.Status)
	}
	return out, nil
}

// Keys returns the server's public keys and fingerprints.
func (c *Client) Keys(ctx context.Context) (KeysResponse, error) {
	var out KeysResponse
	return out, c.send(ctx, http.MethodGet, "/keys", nil, &out)
}

// Upload sends a new document to be sealed and stored.
func (c *Client) Upload(ctx context.Context, req domain.UploadRequest) (domain.Material, error) {
	var out MaterialJSON
	err := c.send(ctx, http.MethodPost, "/materials", UploadBody{
		Name:        req.Name,
		Description: req.Description,
		Kind:        req.Kind,
		Content:     crypto.B64(req.Content),
	}, &out)
	return out.material(), err
}

// List returns material metadata, newest first.
func (c *Client) List(ctx context.Context) ([]domain.Material, error) {
	var out []MaterialJSON
	if err := c.send(ctx, http.MethodGet, "/materials", nil, &out); err != nil {
		return nil, err
	}
	materials := make([]domain.Material, 0, len(out))
	for _, m := range out {
		materials = append(materials, m.material())
	}
	return materials, nil
}

// Get returns one material including its bundle.
func (c *Client) Get(ctx context.Context, id domain.MaterialID) (domain.Material, error) {
	var out MaterialJSON
	err := c.send(ctx, http.MethodGet, materialPath(id), nil, &out)
	return out.material(), err
}

// View fetches the material and its decrypted content.
func (c *Client) View(ctx context.Context, id domain.MaterialID) (domain.ViewedMaterial, error) {
	m, err := c.Get(ctx, id)
	if err != nil {
		return domain.ViewedMaterial{}, err
	}
	resp, err := c.do(ctx, http.MethodGet, materialPath(id)+"/content", nil)
	if err != nil {
		return domain.ViewedMaterial{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return domain.ViewedMaterial{}, decodeError(resp)
	}
	plaintext, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ViewedMaterial{}, err
	}
	return domain.ViewedMaterial{
		Material:  m,
		Plaintext: plaintext,
		MIMEType:  resp.Header.Get("Content-Type"),
	}, nil
}

// Replace uploads new content for an existing material.
func (c *Client) Replace(ctx context.Context, id domain.MaterialID, content []byte) (domain.Material, error) {
	var out MaterialJSON
	err := c.send(ctx, http.MethodPut, materialPath(id)+"/content", ContentBody{Content: crypto.B64(content)}, &out)
	return out.material(), err
}

// UpdateDetails edits a material's name and description.
func (c *Client) UpdateDetails(
	ctx context.Context,
	id domain.MaterialID,
	update domain.DetailsUpdate,
) (domain.Material, error) {
	var out MaterialJSON
	err := c.send(ctx, http.MethodPatch, materialPath(id), update, &out)
	return out.material(), err
}

// Delete removes a material.
func (c *Client) Delete(ctx context.Context, id domain.MaterialID) error {
	return c.send(ctx, http.MethodDelete, materialPath(id), nil, nil)
}

func materialPath(id domain.MaterialID) string {
	return "/materials/" + url.PathEscape(id.String())
}

func (c *Client) do(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return nil, err
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.HTTP.Do(req)
}

func (c *Client) send(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return decodeError(resp)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Kind == domain.KindNone {
		return &Error{Status: resp.StatusCode, Kind: domain.KindInternal}
	}
	return &Error{Status: resp.StatusCode, Kind: body.Kind, Message: body.Error}
}

// Compile-time assertion that Client implements domain.MaterialService.
var _ domain.MaterialService = (*Client)(nil)
