package server

import (
	"html/template"
	"net/http"
)

// shellTemplate is the browser shell. It holds no graph logic: it forwards
// input events over the websocket and paints the SVG frames that come back.
const shellTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>
    html, body { margin: 0; height: 100%; background: #101014; overflow: hidden; }
    #scene { width: 100%; height: 100%; cursor: grab; }
    #scene.panning { cursor: grabbing; }
    #hud { position: fixed; top: 12px; left: 12px; display: flex; gap: 8px; font-family: sans-serif; }
    #hud input, #hud button { background: #1c1c22; color: #ddd; border: 1px solid #333; border-radius: 4px; padding: 6px 10px; }
    #results { position: fixed; top: 48px; left: 12px; background: #1c1c22; color: #ddd; font-family: sans-serif; border-radius: 4px; }
    #results div { padding: 6px 10px; cursor: pointer; }
    #results div:hover { background: #2a2a33; }
    .tooltip-fade { transition: opacity 0.4s; opacity: 0; }
  </style>
</head>
<body>
  <div id="hud">
    <input id="search" type="text" placeholder="Search pages..." autocomplete="off">
    <button id="mode">Alignment</button>
  </div>
  <div id="results"></div>
  <div id="scene"></div>
  <script>
    const scene = document.getElementById('scene');
    const search = document.getElementById('search');
    const results = document.getElementById('results');
    const modeBtn = document.getElementById('mode');
    const proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
    const ws = new WebSocket(proto + '//' + location.host + '/ws');
    let mode = {{.Mode}};
    let dragging = null, panning = false, last = null;

    const send = (msg) => { if (ws.readyState === 1) ws.send(JSON.stringify(msg)); };

    ws.onopen = () => send({type: 'resize', width: scene.clientWidth, height: scene.clientHeight});
    ws.onmessage = (e) => {
      const msg = JSON.parse(e.data);
      if (msg.type === 'frame') {
        scene.innerHTML = msg.svg;
        if (msg.fade) {
          const tip = scene.querySelector('.tooltip');
          if (tip) tip.classList.add('tooltip-fade');
        }
      } else if (msg.type === 'search') {
        results.innerHTML = '';
        for (const r of msg.results || []) {
          const row = document.createElement('div');
          row.textContent = r.title;
          row.onclick = () => { results.innerHTML = ''; search.value = ''; send({type: 'select', id: r.id}); };
          results.appendChild(row);
        }
      }
    };

    const nodeId = (e) => e.target.closest('[data-id]')?.dataset.id;

    scene.addEventListener('mousemove', (e) => {
      if (dragging) { send({type: 'drag', x: e.clientX, y: e.clientY}); return; }
      if (panning) { send({type: 'pan', dx: e.movementX, dy: e.movementY}); return; }
      const id = nodeId(e);
      if (id !== last) { send(id ? {type: 'hover', id} : {type: 'unhover'}); last = id; }
    });
    scene.addEventListener('mousedown', (e) => {
      const id = nodeId(e);
      if (id) { dragging = id; send({type: 'drag_start', id, x: e.clientX, y: e.clientY}); }
      else { panning = true; scene.classList.add('panning'); send({type: 'pan_start'}); }
    });
    window.addEventListener('mouseup', (e) => {
      if (dragging) { send({type: 'drag_end'}); const id = nodeId(e); if (id === dragging) send({type: 'click', id}); dragging = null; }
      else if (panning) { panning = false; scene.classList.remove('panning'); }
    });
    scene.addEventListener('wheel', (e) => {
      e.preventDefault();
      send({type: 'wheel', factor: Math.pow(2, -e.deltaY * 0.002), x: e.clientX, y: e.clientY});
    }, {passive: false});
    scene.addEventListener('dblclick', (e) => { if (!nodeId(e)) send({type: 'clear'}); });

    modeBtn.onclick = () => {
      mode = mode === 'connection' ? 'alignment' : 'connection';
      modeBtn.textContent = mode === 'connection' ? 'Alignment' : 'Connection';
      send({type: 'mode', mode});
    };

    search.addEventListener('input', () => send({type: 'search', query: search.value}));

    const notifySize = () => send({type: 'resize', width: scene.clientWidth, height: scene.clientHeight});
    if (typeof ResizeObserver !== 'undefined') {
      new ResizeObserver(notifySize).observe(scene);
    } else {
      window.addEventListener('resize', notifySize);
    }
    window.addEventListener('message', (e) => { if (e.data === 'resize') notifySize(); });
  </script>
</body>
</html>`

var shellPage = template.Must(template.New("shell").Parse(shellTemplate))

type shellData struct {
	Title string
	Mode  string
}

func (s *Server) handleShell(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := shellPage.Execute(w, shellData{
		Title: "Dungeon Church Oracle",
		Mode:  s.cfg.Mode,
	})
	if err != nil {
		s.logger.Error("render shell", "err", err)
	}
}
