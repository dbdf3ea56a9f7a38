// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package api

// SelectResourceRequest switches the selected resource.
type SelectResourceRequest struct {
	Resource string `json:"resource" validate:"required,resource"`
}

// CreateTargetRequest creates a consumption target. An empty ResourceType
// selects the resource of the request.
type CreateTargetRequest struct {
	PeriodType   string  `json:"period_type" validate:"required,periodtype"`
	ResourceType string  `json:"resource_type,omitempty" validate:"omitempty,resource"`
	Value        float64 `json:"value" validate:"gt=0"`
	ValidFrom    string  `json:"valid_from" validate:"required,isodate"`
}

// ActiveTargetRequest looks up the active target of a period type.
type ActiveTargetRequest struct {
	Period string `json:"period" validate:"required,periodtype"`
}

// ImportHistoryRequest pages the import history.
type ImportHistoryRequest struct {
	Limit int `json:"limit" validate:"min=1,max=100"`
}
