package instagramimpl

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/vinifbn/instagram-insights-api/internal/domain"
	"github.com/vinifbn/instagram-insights-api/internal/instagram"
	"github.com/vinifbn/instagram-insights-api/pkg/retry"
)

const profileFields = "id,user_id,name,username,biography,website,account_type,profile_picture_url,followers_count,follows_count,media_count"

func (g *GraphImpl) GetProfile(ctx context.Context, accessToken string) (*domain.Profile, error) {
	params := url.Values{}
	params.Set("fields", profileFields)
	params.Set("access_token", accessToken)
	profileURL := fmt.Sprintf("%s/me?%s", g.Config.Instagram.GraphURL, params.Encode())

	var profile domain.Profile
	err := retry.Do(ctx, g.Logger, "instagram.GetProfile", func() error {
		profile = domain.Profile{}
		if err := g.getJSON(ctx, profileURL, &profile); err != nil {
			var apiErr *instagram.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
				return retry.Permanent(err)
			}
			return err
		}
		return nil
	}, retry.DefaultConfig())
	if err != nil {
		return nil, err
	}

	return &profile, nil
}
