package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/lifeplanapp/lifeplan-backend/internal/apperror"
	"github.com/lifeplanapp/lifeplan-backend/internal/lifecycle"
	"github.com/lifeplanapp/lifeplan-backend/internal/models"
	"github.com/lifeplanapp/lifeplan-backend/internal/services"
	"github.com/lifeplanapp/lifeplan-backend/pkg/middleware"
	"github.com/sirupsen/logrus"
)

// GoalHandler handles HTTP requests related to goals.
type GoalHandler struct {
	Service *services.GoalService
}

// NewGoalHandler creates a new instance of GoalHandler.
func NewGoalHandler(goalService *services.GoalService) *GoalHandler {
	return &GoalHandler{
		Service: goalService,
	}
}

// goalResponse decorates a goal with its display duration. The label is a
// presentation derivation, never persisted.
type goalResponse struct {
	models.Goal
	DurationLabel string `json:"duration_label"`
}

func toGoalResponse(g models.Goal) goalResponse {
	return goalResponse{Goal: g, DurationLabel: lifecycle.DurationLabel(g)}
}

func toGoalResponses(goals []models.Goal) []goalResponse {
	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g))
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), apperror.HTTPStatus(err))
}

// CreateGoalHandler handles the creation of a new goal.
func (h *GoalHandler) CreateGoalHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		logrus.Warn("Unauthorized access attempt during goal creation")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input lifecycle.NewGoalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during goal creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	deviceID := r.Header.Get("X-Device-ID")

	goal, err := h.Service.CreateGoal(r.Context(), claims.UserID, deviceID, input)
	if err != nil {
		writeError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID": claims.UserID,
		"goalID": goal.ID.Hex(),
	}).Info("Goal successfully created")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toGoalResponse(*goal))
}

// GetGoalHandler handles fetching a single goal by its ID.
func (h *GoalHandler) GetGoalHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	goalID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	goal, err := h.Service.GetGoal(r.Context(), goalID)
	if err != nil {
		logrus.WithError(err).WithField("goalID", goalID).Warn("Goal fetch failed")
		writeError(w, err)
		return
	}

	if goal.UserID != claims.UserID {
		logrus.WithFields(logrus.Fields{
			"userID": claims.UserID,
			"goalID": goalID,
		}).Warn("Forbidden: user tried to access another user's goal")
		http.Error(w, "Forbidden: You can only view your own goals", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toGoalResponse(*goal))
}

// GetGoalsHandler lists the user's goals. Optional query parameters:
// status (active|completed), start and end (YYYY-MM-DD, independent) for a
// date window, or timeline (legacy year bucket, mutually separate path).
func (h *GoalHandler) GetGoalsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	log := logrus.WithField("userID", claims.UserID)

	query := r.URL.Query()
	statusFilter := query.Get("status")
	if statusFilter != "" && statusFilter != lifecycle.FilterActive && statusFilter != lifecycle.FilterCompleted {
		writeError(w, apperror.InvalidArgument("status must be active or completed"))
		return
	}

	var goals []models.Goal
	var err error

	if timelineParam := query.Get("timeline"); timelineParam != "" {
		years, convErr := strconv.Atoi(timelineParam)
		if convErr != nil {
			writeError(w, apperror.InvalidArgument("timeline must be a number of years"))
			return
		}
		goals, err = h.Service.ListGoalsByTimeline(r.Context(), claims.UserID, years, statusFilter)
	} else {
		var window lifecycle.Window
		if startParam := query.Get("start"); startParam != "" {
			start, parseErr := lifecycle.ParseDate(startParam)
			if parseErr != nil {
				writeError(w, parseErr)
				return
			}
			window.Start = &start
		}
		if endParam := query.Get("end"); endParam != "" {
			end, parseErr := lifecycle.ParseDate(endParam)
			if parseErr != nil {
				writeError(w, parseErr)
				return
			}
			window.End = &end
		}
		goals, err = h.Service.ListGoals(r.Context(), claims.UserID, statusFilter, window)
	}

	if err != nil {
		log.WithError(err).Error("Failed to retrieve user goals")
		writeError(w, err)
		return
	}

	// An empty list is a successful outcome, rendered as an empty array.
	log.WithField("goalCount", len(goals)).Info("User goals fetched")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toGoalResponses(goals))
}

// UpdateGoalHandler handles a full-field edit of an existing goal.
func (h *GoalHandler) UpdateGoalHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	goalID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	existing, err := h.Service.GetGoal(r.Context(), goalID)
	if err != nil {
		writeError(w, err)
		return
	}
	if existing.UserID != claims.UserID {
		http.Error(w, "Forbidden: You can only update your own goals", http.StatusForbidden)
		return
	}

	var payload struct {
		lifecycle.NewGoalInput
		Progress int `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logrus.WithError(err).Warn("Invalid update payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateGoal(r.Context(), goalID, payload.NewGoalInput, payload.Progress)
	if err != nil {
		writeError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID": claims.UserID,
		"goalID": goalID,
	}).Info("Goal successfully updated")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toGoalResponse(*updated))
}

// UpdateGoalProgressHandler sets a goal's progress. Status is derived from
// progress and persisted with it in a single write.
func (h *GoalHandler) UpdateGoalProgressHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	goalID := vars["id"]
	log := logrus.WithField("goalID", goalID)

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	goal, err := h.Service.GetGoal(r.Context(), goalID)
	if err != nil {
		log.WithError(err).Warn("Goal not found for progress update")
		writeError(w, err)
		return
	}
	if goal.UserID != claims.UserID {
		http.Error(w, "Forbidden: You can only update your own goals", http.StatusForbidden)
		return
	}

	var payload struct {
		Progress int `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.UpdateProgress(r.Context(), goalID, payload.Progress); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.Service.GetGoal(r.Context(), goalID)
	if err != nil {
		writeError(w, err)
		return
	}

	log.WithField("progress", payload.Progress).Info("Goal progress updated")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toGoalResponse(*updated))
}

// MarkGoalCompleteHandler completes a goal, forcing progress to 100.
func (h *GoalHandler) MarkGoalCompleteHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	goalID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	goal, err := h.Service.GetGoal(r.Context(), goalID)
	if err != nil {
		writeError(w, err)
		return
	}
	if goal.UserID != claims.UserID {
		http.Error(w, "Forbidden: You can only complete your own goals", http.StatusForbidden)
		return
	}

	if err := h.Service.MarkComplete(r.Context(), goalID, claims.UserID); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.Service.GetGoal(r.Context(), goalID)
	if err != nil {
		writeError(w, err)
		return
	}

	logrus.WithField("goalID", goalID).Info("Goal marked complete")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toGoalResponse(*updated))
}

// DeleteGoalHandler handles deleting a goal by its ID.
func (h *GoalHandler) DeleteGoalHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	goalID := vars["id"]
	log := logrus.WithField("goalID", goalID)

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	goal, err := h.Service.GetGoal(r.Context(), goalID)
	if err != nil {
		log.WithError(err).Warn("Goal not found or fetch failed")
		writeError(w, err)
		return
	}
	if goal.UserID != claims.UserID {
		log.Warn("Forbidden: user tried to delete another user's goal")
		http.Error(w, "Forbidden: You can only delete your own goals", http.StatusForbidden)
		return
	}

	if err := h.Service.DeleteGoal(r.Context(), goalID, claims.UserID); err != nil {
		log.WithError(err).Error("Failed to delete goal")
		writeError(w, err)
		return
	}

	log.Info("Goal deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}
