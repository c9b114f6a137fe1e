/*
Package server implements msgpack IPC for city suggestion services.

The server reads a stream of msgpack encoded requests from stdin and writes one
msgpack encoded response per request to stdout. Messages are self delimiting, so
there is no extra framing. Logs go to stderr.

# IPC

Every request carries an ID that is echoed in its response, and an action.
Suggest is the default action:

	{"id": "req_001", "q": "tor", "l": 5}

Setting both "lat" and "lon" ranks by distance instead of population:

	{"id": "req_002", "q": "van", "lat": 48.43, "lon": -123.37}

The server answers with ranked suggestions and the time taken in microseconds:

	{"id": "req_002", "s": [{"n": "Victoria, British Columbia, CA", "la": 48.43, "lo": -123.37, "sc": 1}], "c": 1, "t": 85}

Reload re-reads the dataset and publishes a new engine once it is fully built.
Queries in flight keep using the engine they started with:

	{"id": "op_001", "action": "reload"}
	{"id": "op_001", "status": "ok", "count": 7237}

Health reports the number of loaded records:

	{"id": "op_002", "action": "health"}

Rejected requests get an ErrorResponse with code 400, engine failures code 500.
When the server starts it writes a StatusResponse with status "ready".
*/
package server

// Request actions.
const (
	ActionSuggest = "suggest"
	ActionReload  = "reload"
	ActionHealth  = "health"
)

// Request is the envelope for every IPC message
type Request struct {
	ID     string   `msgpack:"id"`
	Action string   `msgpack:"action,omitempty"`
	Query  string   `msgpack:"q,omitempty"`
	Lat    *float64 `msgpack:"lat,omitempty"`
	Lon    *float64 `msgpack:"lon,omitempty"`
	Limit  int      `msgpack:"l,omitempty"`
}

// Suggestion - minimal suggestion response
type Suggestion struct {
	Name      string  `msgpack:"n"`
	Latitude  float64 `msgpack:"la"`
	Longitude float64 `msgpack:"lo"`
	Score     float64 `msgpack:"sc"`
}

// SuggestResponse - suggest response
type SuggestResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"`
}

// StatusResponse answers reload and health, and announces readiness
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Count  int    `msgpack:"count"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
