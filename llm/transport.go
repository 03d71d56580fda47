package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DoJSONRoundTrip sends a JSON request body and decodes the JSON response
// into respBody. Non-200 responses are returned as errors carrying the
// status code and response body.
func DoJSONRoundTrip(
	ctx context.Context,
	client *http.Client,
	method, url string,
	headers map[string]string,
	reqBody any,
	respBody any,
) error {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error (%d): %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, respBody); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
