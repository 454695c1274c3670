package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/legalconnect/consult-client/internal/model"
)

func (c *Client) SearchLawyers(ctx context.Context, criteria model.LawyerSearchCriteria) (*model.LawyerSearchResult, error) {
	params := url.Values{}
	if criteria.Name != "" {
		params.Set("name", criteria.Name)
	}
	if criteria.Specialization != "" {
		params.Set("specialization", criteria.Specialization)
	}
	if criteria.MinRating > 0 {
		params.Set("minRating", strconv.FormatFloat(criteria.MinRating, 'f', -1, 64))
	}
	if criteria.MinExperience > 0 {
		params.Set("minExperience", strconv.Itoa(criteria.MinExperience))
	}
	if criteria.MinCompletedCases > 0 {
		params.Set("minCompletedCases", strconv.Itoa(criteria.MinCompletedCases))
	}
	if criteria.Availability != "" {
		params.Set("availability", criteria.Availability)
	}
	if criteria.Page > 0 {
		params.Set("page", strconv.Itoa(criteria.Page))
	}
	if criteria.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(criteria.PageSize))
	}

	path := "/api/cases/lawyers/search"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var result model.LawyerSearchResult
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, fmt.Errorf("failed to search lawyers: %w", err)
	}
	return &result, nil
}

func (c *Client) LawyerProfile(ctx context.Context, lawyerID int64) (*model.LawyerProfile, error) {
	var profile model.LawyerProfile
	path := fmt.Sprintf("/api/lawyers/%d/profile", lawyerID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &profile); err != nil {
		return nil, fmt.Errorf("failed to fetch lawyer %d profile: %w", lawyerID, err)
	}
	return &profile, nil
}

func (c *Client) UpdateLawyerProfile(ctx context.Context, lawyerID int64, profile model.LawyerProfile) (*model.LawyerProfile, error) {
	var updated model.LawyerProfile
	path := fmt.Sprintf("/api/lawyers/%d/profile", lawyerID)
	if err := c.doJSON(ctx, http.MethodPut, path, profile, &updated); err != nil {
		return nil, fmt.Errorf("failed to update lawyer %d profile: %w", lawyerID, err)
	}
	return &updated, nil
}
