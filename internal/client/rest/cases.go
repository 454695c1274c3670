package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/legalconnect/consult-client/internal/model"
)

func (c *Client) CreateCase(ctx context.Context, req model.CreateCaseRequest) (*model.Case, error) {
	var created model.Case
	if err := c.doJSON(ctx, http.MethodPost, "/api/cases/create", req, &created); err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}
	return &created, nil
}

func (c *Client) CaseByID(ctx context.Context, caseID int64) (*model.Case, error) {
	var caseData model.Case
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/cases/%d", caseID), nil, &caseData); err != nil {
		return nil, fmt.Errorf("failed to fetch case %d: %w", caseID, err)
	}
	return &caseData, nil
}

func (c *Client) CasesByUser(ctx context.Context, userID int64) (model.CaseList, error) {
	var cases model.CaseList
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/cases/user/%d", userID), nil, &cases); err != nil {
		return nil, fmt.Errorf("failed to fetch user cases: %w", err)
	}
	return cases, nil
}

func (c *Client) CasesByLawyer(ctx context.Context, lawyerID int64) (model.CaseList, error) {
	var cases model.CaseList
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/cases/lawyer/%d", lawyerID), nil, &cases); err != nil {
		return nil, fmt.Errorf("failed to fetch lawyer cases: %w", err)
	}
	return cases, nil
}

func (c *Client) UnassignedCases(ctx context.Context) (model.CaseList, error) {
	var cases model.CaseList
	if err := c.doJSON(ctx, http.MethodGet, "/api/cases/unassigned", nil, &cases); err != nil {
		return nil, fmt.Errorf("failed to fetch unassigned cases: %w", err)
	}
	return cases, nil
}

func (c *Client) RecommendedCases(ctx context.Context, lawyerID int64) (model.CaseList, error) {
	var cases model.CaseList
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/cases/recommended/%d", lawyerID), nil, &cases); err != nil {
		return nil, fmt.Errorf("failed to fetch recommended cases: %w", err)
	}
	return cases, nil
}

func (c *Client) AssignLawyer(ctx context.Context, caseID, lawyerID int64) (*model.Case, error) {
	var updated model.Case
	path := fmt.Sprintf("/api/cases/%d/assign", caseID)
	if err := c.doJSON(ctx, http.MethodPost, path, model.AssignLawyerRequest{LawyerID: lawyerID}, &updated); err != nil {
		return nil, fmt.Errorf("failed to assign lawyer to case %d: %w", caseID, err)
	}
	return &updated, nil
}

func (c *Client) UpdateCaseSolution(ctx context.Context, caseID int64, solution string) (*model.Case, error) {
	var updated model.Case
	path := fmt.Sprintf("/api/cases/%d/solution", caseID)
	if err := c.doJSON(ctx, http.MethodPut, path, model.UpdateSolutionRequest{Solution: solution}, &updated); err != nil {
		return nil, fmt.Errorf("failed to update case %d solution: %w", caseID, err)
	}
	return &updated, nil
}

func (c *Client) UpdateCaseStatus(ctx context.Context, caseID int64, status string) (*model.Case, error) {
	var updated model.Case
	path := fmt.Sprintf("/api/cases/%d/status", caseID)
	if err := c.doJSON(ctx, http.MethodPut, path, model.UpdateStatusRequest{Status: status}, &updated); err != nil {
		return nil, fmt.Errorf("failed to update case %d status: %w", caseID, err)
	}
	return &updated, nil
}
