package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Info describes a bridge service and the Steam session it owns.
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	LoggedOn  bool   `json:"logged_on"`
	SteamId   uint64 `json:"steam_id,string"`
	AccountId uint32 `json:"account_id"`
}

// Info fetches the /api/info endpoint of the bridge.
func (c *Conn) Info(ctx context.Context) (Info, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		baseURL("http", c.tls, "%s/api/info", c.url), nil)
	if err != nil {
		return Info{}, err
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Info{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		data, err := io.ReadAll(resp.Body)
		if err == nil && len(data) > 0 {
			return Info{}, fmt.Errorf("failed to fetch bridge info: %s", string(data))
		}
		return Info{}, fmt.Errorf("invalid response. expected: %d, got: %d", http.StatusOK, resp.StatusCode)
	}

	var info Info
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return Info{}, err
	}
	if info.Name == "" {
		return Info{}, errors.New("empty `name` field")
	}
	return info, nil
}
