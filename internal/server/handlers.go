package server

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/conneroisu/webpulse/internal/report"
)

// liveScript swaps the report section whenever the server pushes a new
// report and reconnects after the connection drops.
const liveScript = `(function(){
function connect(){
var proto=location.protocol==="https:"?"wss://":"ws://";
var ws=new WebSocket(proto+location.host+"/ws");
ws.onmessage=function(ev){
var msg=JSON.parse(ev.data);
if(msg.type!=="report"){return;}
fetch("/fragment").then(function(r){return r.text();}).then(function(html){
var current=document.getElementById("report");
if(current){current.outerHTML=html;}else{document.body.insertAdjacentHTML("afterbegin",html);}
var waiting=document.getElementById("waiting");
if(waiting){waiting.remove();}
});
};
ws.onclose=function(){setTimeout(connect,2000);};
}
connect();
})();`

var waitingBody = templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, `<p id="waiting" class="muted">Waiting for the first analysis to finish...</p>`+"\n")
	return err
})

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	title := "webpulse"
	var body templ.Component = waitingBody
	if current := s.Current(); current != nil {
		title = "webpulse: " + current.Project.Root
		body = report.Body(current)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.Document(title, body, liveScript).Render(r.Context(), w); err != nil {
		s.logger.Warn(r.Context(), err, "Failed to write index response")
	}
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	current := s.Current()
	if current == nil {
		http.Error(w, "no report yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.Body(current).Render(r.Context(), w); err != nil {
		s.logger.Warn(r.Context(), err, "Failed to write report fragment")
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	current := s.Current()
	if current == nil {
		http.Error(w, "no report yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := report.WriteJSON(w, current); err != nil {
		s.logger.Warn(r.Context(), err, "Failed to write report response")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	status := map[string]interface{}{
		"status":  "ok",
		"clients": s.ClientCount(),
		"ready":   s.Current() != nil,
	}
	if err := report.WriteJSON(w, status); err != nil {
		s.logger.Warn(r.Context(), err, "Failed to write health response")
	}
}
