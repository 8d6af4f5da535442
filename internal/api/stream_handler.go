package api

import (
	"io"
	"net/http"

	"gymbook/admin-app/internal/service"
	"gymbook/admin-app/internal/watch"

	"github.com/gin-gonic/gin"
)

// StreamHandler serves the console's live list views over SSE. Each open
// stream is one hub subscription: the full current result set is sent on
// connect and again after every mutation, and disconnecting cancels the
// subscription.
type StreamHandler struct {
	gymService     service.GymService
	trainerService service.TrainerService
	gymHub         *watch.Hub
	trainerHub     *watch.Hub
}

func NewStreamHandler(
	gymService service.GymService,
	trainerService service.TrainerService,
	gymHub *watch.Hub,
	trainerHub *watch.Hub,
) *StreamHandler {
	return &StreamHandler{
		gymService:     gymService,
		trainerService: trainerService,
		gymHub:         gymHub,
		trainerHub:     trainerHub,
	}
}

// StreamGyms streams the gym catalog.
func (h *StreamHandler) StreamGyms(c *gin.Context) {
	callerUID, _ := getUserIDFromContext(c)

	// Authorize before committing to the stream so a denied caller gets a
	// proper status instead of a hung connection.
	if _, err := h.gymService.ListGyms(c.Request.Context(), callerUID); err != nil {
		respondError(c, err)
		return
	}

	h.stream(c, h.gymHub, "gyms", func() (interface{}, error) {
		gyms, err := h.gymService.ListGyms(c.Request.Context(), callerUID)
		if err != nil {
			return nil, err
		}
		return mapGyms(gyms), nil
	})
}

// StreamTrainers streams the trainer list.
func (h *StreamHandler) StreamTrainers(c *gin.Context) {
	callerUID, _ := getUserIDFromContext(c)

	if _, err := h.trainerService.ListTrainers(c.Request.Context(), callerUID); err != nil {
		respondError(c, err)
		return
	}

	h.stream(c, h.trainerHub, "trainers", func() (interface{}, error) {
		trainers, err := h.trainerService.ListTrainers(c.Request.Context(), callerUID)
		if err != nil {
			return nil, err
		}
		return mapTrainers(trainers), nil
	})
}

// stream pumps load() results to the client whenever hub fires. The signal
// channel is buffered with drop semantics so a burst of mutations coalesces
// into one re-read.
func (h *StreamHandler) stream(c *gin.Context, hub *watch.Hub, event string, load func() (interface{}, error)) {
	signal := make(chan struct{}, 1)
	cancel := hub.Subscribe(func() {
		select {
		case signal <- struct{}{}:
		default:
		}
	})
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Status(http.StatusOK)

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-signal:
			payload, err := load()
			if err != nil {
				return false
			}
			c.SSEvent(event, payload)
			return true
		}
	})
}
