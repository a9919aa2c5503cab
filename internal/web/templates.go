package web

import (
	"bytes"
	"html/template"

	"github.com/jaminalder/minimal-tic-tac-toe/internal/view"
)

type templates struct {
	page *template.Template
	game *template.Template
}

// gameData feeds the game fragment. Animate adds the one-shot fade-in class
// to the status line right after a move.
type gameData struct {
	Game    view.Model
	Animate bool
}

func loadTemplates() *templates {
	page := template.Must(template.New("page").Parse(pageTemplate))
	template.Must(page.New("game").Parse(gameTemplate))
	game := template.Must(template.New("game_only").Parse(gameTemplate))
	return &templates{page: page, game: game}
}

func renderTemplate(t *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const pageTemplate = `<!doctype html><html lang="en"><head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>Tic Tac Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>
<style>
:root { --accent: #FBC02D; --primary: #1976D2; --secondary: #424242; }
body { font-family: system-ui, sans-serif; color: var(--secondary); display: flex; justify-content: center; }
.ttt-game-container { text-align: center; margin-top: 3rem; }
.ttt-title { color: var(--primary); }
.ttt-status { min-height: 1.5rem; margin-bottom: 1rem; }
.ttt-status-accent { color: var(--accent); font-weight: bold; }
.fade-in { animation: fade 150ms ease-in; }
@keyframes fade { from { opacity: 0; } to { opacity: 1; } }
.ttt-board-row { display: flex; }
.ttt-square { width: 4rem; height: 4rem; font-size: 2rem; margin: 2px; border: 1px solid var(--secondary); background: #fff; cursor: pointer; }
.ttt-square:disabled { cursor: default; }
.ttt-square.highlight { background: var(--accent); }
.ttt-symbol-X { color: var(--primary); }
.ttt-symbol-O { color: var(--secondary); }
.board-finished { opacity: .85; }
.ttt-reset-btn { margin-top: 1rem; padding: .5rem 1.5rem; background: var(--primary); color: #fff; border: 0; border-radius: 4px; }
.ttt-footer { margin-top: 2rem; font-size: .8rem; }
</style>
</head><body>
<div class="ttt-game-container" hx-ext="sse" sse-connect="/events">
  <h1 class="ttt-title">Tic Tac Toe</h1>
  <div sse-swap="game">{{template "game" .}}</div>
  <footer class="ttt-footer"><span class="footer-credit">A modern minimal game</span></footer>
</div>
</body></html>`

const gameTemplate = `<div id="game">
  <div class="ttt-status{{if .Game.Accent}} ttt-status-accent{{end}}{{if .Animate}} fade-in{{end}}" aria-live="polite">{{.Game.Status}}</div>
  <div class="ttt-board{{if .Game.Finished}} board-finished{{end}}" aria-label="Tic Tac Toe board" role="grid">
    {{range .Game.Rows}}
    <div class="ttt-board-row">
      {{range .}}
      <form action="/move" method="post" hx-post="/move" hx-target="#game" hx-swap="outerHTML">
        <input type="hidden" name="i" value="{{.Index}}">
        <button type="submit" class="ttt-square{{if .Highlight}} highlight{{end}}" aria-label="{{.Label}}"{{if not .Playable}} disabled{{end}}>{{if .Symbol}}<span class="ttt-symbol ttt-symbol-{{.Symbol}}">{{.Symbol}}</span>{{end}}</button>
      </form>
      {{end}}
    </div>
    {{end}}
  </div>
  <form action="/reset" method="post" hx-post="/reset" hx-target="#game" hx-swap="outerHTML">
    <button type="submit" class="ttt-reset-btn" aria-label="New Game">{{.Game.Button}}</button>
  </form>
</div>
`
