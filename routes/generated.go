package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/victorjacobs/go-ykh531e/bridge"
)

// Generated serves the statements emitted while setting up the device.
func Generated(b *bridge.Bridge) func(http.ResponseWriter, *http.Request, httprouter.Params) {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		for _, s := range b.Generated() {
			w.Write([]byte(s.String() + "\n"))
		}
	}
}

func NewRouter(b *bridge.Bridge) *httprouter.Router {
	router := httprouter.New()
	router.GET("/state", State(b))
	router.GET("/generated", Generated(b))

	return router
}
