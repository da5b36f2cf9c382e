package server

const uiHeadHTML = `{{define "head"}}<!doctype html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}} · raincast</title>
  <style>
` + uiPageChromeCSS + `
    .auth-card { max-width: 420px; margin: 48px auto; }
    .strength-bar { height: 4px; border-radius: 2px; background: var(--line); margin-top: 6px; }
    .strength-bar.strength-weak { background: var(--bad); width: 33%; }
    .strength-bar.strength-medium { background: var(--warn); width: 66%; }
    .strength-bar.strength-strong { background: var(--ok); width: 100%; }
    .features-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(200px, 1fr)); gap: 12px; }
    .header { display: flex; justify-content: space-between; align-items: center; gap: 12px; }
    #result { display: none; }
    .prediction-text { font-size: 24px; font-weight: 700; margin: 0 0 6px; }
    .prediction-text.rain-expected { color: var(--accent); }
    .prediction-text.no-rain { color: #b7791f; }
    .feature-item { display: flex; justify-content: space-between; border-bottom: 1px solid var(--line); padding: 6px 0; font-size: 13px; }
  </style>
</head>
<body data-flash-ttl="{{.FlashTTLMS}}" data-flash-exit="{{.FlashExitMS}}">
{{template "flashes" .}}
{{end}}

{{define "flashes"}}<div class="flash-messages">
{{range .Flashes}}  <div class="flash-message {{.Kind}}">{{.Text}} <span class="close-btn">&times;</span></div>
{{end}}</div>{{end}}

{{define "field"}}<div class="form-group{{if .Message}} error{{end}}">
  <label for="{{.Name}}">{{.Label}}</label>
  <input id="{{.Name}}" name="{{.Name}}" type="{{.Type}}" value="{{.Value}}" required />
  {{if .Strength}}<div class="strength-bar"></div>{{end}}
  {{if .Message}}<div class="error-message">{{.Message}}</div>{{end}}
</div>{{end}}

{{define "foot"}}<script src="/ui/flash.js"></script>
</body>
</html>{{end}}`

const loginHTML = `{{template "head" .}}
<main>
  <div class="card auth-card">
    <h1>Welcome back</h1>
    <p class="muted">Log in to predict rainfall.</p>
    <form class="auth-form" method="post" action="/login" novalidate>
      {{template "field" (.Field "username" "Username" "text")}}
      {{template "field" (.Field "password" "Password" "password")}}
      <button type="submit" class="auth-btn">Login</button>
    </form>
    <p class="muted">No account yet? <a href="/signup">Sign up</a></p>
  </div>
</main>
<script src="/ui/auth.js"></script>
{{template "foot" .}}`

const signupHTML = `{{template "head" .}}
<main>
  <div class="card auth-card">
    <h1>Create account</h1>
    <form class="auth-form" method="post" action="/signup" novalidate>
      {{template "field" (.Field "username" "Username" "text")}}
      {{template "field" (.Field "email" "Email" "email")}}
      {{template "field" (.Field "password" "Password" "password")}}
      {{template "field" (.Field "confirm_password" "Confirm Password" "password")}}
      <button type="submit" class="auth-btn">Sign Up</button>
    </form>
    <p class="muted">Already registered? <a href="/login">Log in</a></p>
  </div>
</main>
<script src="/ui/auth.js"></script>
{{template "foot" .}}`

const indexHTML = `{{template "head" .}}
<main>
  <div class="card header">
    <div>
      <h1>Rainfall prediction</h1>
      <div class="muted">Signed in as {{.Username}} · model {{.Model.ModelVersion}}{{if .Model.ModelReady}} ready{{else}} not ready{{end}} · {{.Model.FeatureCount}} features</div>
    </div>
    <a href="/logout">Logout</a>
  </div>
  <div class="card">
    <form id="prediction-form">
      <div class="features-grid">
      {{range .Features}}
        <div class="form-group" title="{{.Description}}">
          <label for="{{.Name}}"><i class="fas fa-{{.Icon}}"></i> {{.Label}}{{if .Unit}} ({{.Unit}}){{end}}</label>
          <input id="{{.Name}}" name="{{.Name}}" type="number" step="any" value="{{.Default}}"{{if .HasRange}} min="{{.Min}}" max="{{.Max}}"{{end}} required />
        </div>
      {{end}}
      </div>
      <button type="submit">Predict Rainfall</button>
    </form>
  </div>
  <div class="card" id="result">
    <div id="prediction-text" class="prediction-text"></div>
    <div id="confidence"></div>
    <div id="features-list"></div>
  </div>
</main>
<script src="/ui/predict.js"></script>
{{template "foot" .}}`
