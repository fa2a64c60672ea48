package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/victorjacobs/go-ykh531e/bridge"
	"github.com/victorjacobs/go-ykh531e/climate"
)

type stateResponse struct {
	climate.State

	MinTemperature float64   `json:"min_temperature"`
	MaxTemperature float64   `json:"max_temperature"`
	Modes          []string  `json:"modes"`
	Timestamp      time.Time `json:"timestamp"`
}

func State(b *bridge.Bridge) func(http.ResponseWriter, *http.Request, httprouter.Params) {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		traits := b.Traits()

		resp := stateResponse{
			State:          b.State(),
			MinTemperature: traits.MinTemperature,
			MaxTemperature: traits.MaxTemperature,
			Timestamp:      time.Now(),
		}
		for _, m := range traits.Modes {
			resp.Modes = append(resp.Modes, string(m))
		}

		if marshaled, err := json.Marshal(resp); err != nil {
			log.Printf("error marshaling: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
		} else {
			w.Header().Set("Content-Type", "application/json")
			w.Write(marshaled)
		}
	}
}
