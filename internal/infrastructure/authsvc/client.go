package authsvc

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// HTTPGroupResolver asks the auth service which groups a user belongs to,
// for merchant-credentials selection.
type HTTPGroupResolver struct {
	Address string
}

func NewHTTPGroupResolver(address string) *HTTPGroupResolver {
	return &HTTPGroupResolver{Address: address}
}

type groupsResponse struct {
	Groups []string `json:"groups"`
}

func (c *HTTPGroupResolver) Groups(userID string) ([]string, error) {
	response, err := http.Get(fmt.Sprintf("%s/users/%s/groups", c.Address, url.PathEscape(userID)))
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("auth service: HTTP %d", response.StatusCode)
	}

	var parsed groupsResponse
	if err := json.Unmarshal(responseBodyBytes, &parsed); err != nil {
		return nil, err
	}
	return parsed.Groups, nil
}
