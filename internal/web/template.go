package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/tannerbobak/cu-boulder-chem-e-car/internal/logic"
	"github.com/tannerbobak/cu-boulder-chem-e-car/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"okText": func(ok bool) string {
		if ok {
			return "OK"
		}
		return "LOW"
	},
	"stateClass": func(s logic.State) string {
		switch s {
		case logic.StateRunning:
			return "running"
		case logic.StateStopped:
			return "stopped"
		}
		return "idle"
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="1">
<title>Chem-E-Car</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.idle { color: #888; }
.running { color: green; font-weight: bold; }
.stopped { color: #b00; font-weight: bold; }
.ok { color: green; }
.low { color: red; }
</style>
</head>
<body>
<h1>Chem-E-Car Run Controller</h1>
<table>
<tr><th>State</th><td class="{{stateClass .State}}">{{.State}}</td></tr>
<tr><th>Light</th><td>{{.Light}} (baseline {{.Baseline}}, stop below {{.Threshold}})</td></tr>
<tr><th>Battery</th><td class="{{if .Health.BatteryOK}}ok{{else}}low{{end}}">{{printf "%.2f" .Health.BatteryVolts}} V ({{okText .Health.BatteryOK}})</td></tr>
<tr><th>Fuel cell</th><td class="{{if .Health.FuelCellOK}}ok{{else}}low{{end}}">{{printf "%.2f" .Health.FuelCellVolts}} V ({{okText .Health.FuelCellOK}})</td></tr>
<tr><th>Run starts</th><td>{{.Counts.Starts}}</td></tr>
<tr><th>Run aborts</th><td>{{.Counts.Aborts}}</td></tr>
<tr><th>Endpoint stops</th><td>{{.Counts.EndpointStops}}</td></tr>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Telemetry</th><td>{{if .MQTTConnected}}connected{{else}}offline{{end}}</td></tr>
</table>
<p><a href="/index.json">JSON</a></p>
</body>
</html>`

func renderHTML(w io.Writer, snap status.Snapshot) {
	if err := indexTmpl.Execute(w, snap); err != nil {
		log.Printf("render status page: %v", err)
	}
}
