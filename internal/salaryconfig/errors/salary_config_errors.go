package salaryconfigerrors

import (
	"net/http"

	"fleetops/internal/shared/apperror"
)

var (
	ErrConfigAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A salary config for this vehicle type already exists",
		http.StatusConflict,
	)

	ErrRuleNotExclusive = apperror.New(
		apperror.CodeInvalidInput,
		"Each rule must set exactly one of multiplier or fixed_amount",
		http.StatusBadRequest,
	)

	ErrRulesNotContiguous = apperror.New(
		apperror.CodeInvalidInput,
		"Rules must cover order counts from 0 upward without gaps or overlaps",
		http.StatusBadRequest,
	)

	ErrRulesNotTerminated = apperror.New(
		apperror.CodeInvalidInput,
		"The last rule must be unbounded (no max_orders)",
		http.StatusBadRequest,
	)
)
