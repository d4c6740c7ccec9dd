package directory

import (
	"encoding/json"
	"fmt"
)

type envelope[T any] struct {
	Data T `json:"data"`
}

// ProjectClient talks to the external project-management system.
type ProjectClient struct {
	transport *Transport
}

func NewProjectClient(baseURL, token string) *ProjectClient {
	return &ProjectClient{transport: NewTransport(baseURL, token)}
}

func (pc *ProjectClient) ProjectsOwnedBy(managerID int32) ([]int32, error) {
	resp, err := pc.transport.Get(fmt.Sprintf("/api/v1/managers/%d/projects", managerID), nil)
	if err != nil {
		return nil, err
	}

	var result envelope[[]struct {
		ID int32 `json:"id"`
	}]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}

	ids := make([]int32, 0, len(result.Data))
	for _, p := range result.Data {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (pc *ProjectClient) AllProjects() ([]Project, error) {
	resp, err := pc.transport.Get("/api/v1/projects", nil)
	if err != nil {
		return nil, err
	}

	var result envelope[[]Project]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// UserClient talks to the external user-management system.
type UserClient struct {
	transport *Transport
}

func NewUserClient(baseURL, token string) *UserClient {
	return &UserClient{transport: NewTransport(baseURL, token)}
}

func (uc *UserClient) AllUsers() (map[int32]User, error) {
	resp, err := uc.transport.Get("/api/v1/users", nil)
	if err != nil {
		return nil, err
	}

	var result envelope[map[int32]User]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// HolidayClient fetches holiday/leave calendars from the external system.
type HolidayClient struct {
	transport *Transport
}

func NewHolidayClient(baseURL, token string) *HolidayClient {
	return &HolidayClient{transport: NewTransport(baseURL, token)}
}

func (hc *HolidayClient) HolidaysFor(userID int32, month, year int) ([]Holiday, error) {
	resp, err := hc.transport.Get(fmt.Sprintf("/api/v1/users/%d/holidays", userID), map[string]string{
		"month": fmt.Sprintf("%d", month),
		"year":  fmt.Sprintf("%d", year),
	})
	if err != nil {
		return nil, err
	}

	var result envelope[[]struct {
		Date                    string `json:"date"` // yyyy-MM-dd
		SubmitTimesheetRequired bool   `json:"submitTimesheetRequired"`
		Name                    string `json:"name"`
		Description             string `json:"description"`
	}]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}

	holidays := make([]Holiday, 0, len(result.Data))
	for _, h := range result.Data {
		d, err := parseDate(h.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", h.Date, err)
		}
		holidays = append(holidays, Holiday{
			Date:                    d,
			SubmitTimesheetRequired: h.SubmitTimesheetRequired,
			Name:                    h.Name,
			Description:             h.Description,
		})
	}
	return holidays, nil
}
