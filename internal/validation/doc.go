// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

/*
Package validation validates API request bodies with go-playground/validator.

A single validator instance is built on first use. Besides the built-in tags
it understands three domain tags:

	isodate     "2026-02-03" (strict, the day must exist)
	resource    "el" or "water", case-insensitive
	periodtype  "daily", "weekly", "monthly" or "yearly"

Fields are reported by their JSON names so messages match what clients sent.

# Usage

	type createTargetRequest struct {
	    PeriodType   string  `json:"period_type" validate:"required,periodtype"`
	    ResourceType string  `json:"resource_type" validate:"omitempty,resource"`
	    Value        float64 `json:"value" validate:"gt=0"`
	    ValidFrom    string  `json:"valid_from" validate:"required,isodate"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
	    return
	}
*/
package validation
