package email

import "html/template"

// alertData feeds the alert templates.
type alertData struct {
	UserName   string
	BudgetName string
	Currency   string
	Amount     float64
	Spent      float64
	Remaining  float64
	Percentage float64
	ExceededBy float64
	Tips       []string
}

var thresholdTemplate = template.Must(template.New("threshold").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #ff9800;">Budget Alert</h1>
  <p>Hello {{.UserName}},</p>
  <p>Your <strong>{{.BudgetName}}</strong> budget has reached
    <strong>{{printf "%.1f" .Percentage}}%</strong> of its limit.</p>
  <ul>
    <li>Total budget: {{.Currency}} {{printf "%.2f" .Amount}}</li>
    <li>Amount spent: {{.Currency}} {{printf "%.2f" .Spent}}</li>
    <li>Remaining: {{.Currency}} {{printf "%.2f" .Remaining}}</li>
  </ul>
  {{if .Tips}}
  <h3>Tips</h3>
  <ul>
    {{range .Tips}}<li>{{.}}</li>{{end}}
  </ul>
  {{end}}
  <p style="color: #999; font-size: 12px;">This is an automated message from Money Map.
    You can manage your notification preferences in the app settings.</p>
</div>
`))

var exceededTemplate = template.Must(template.New("exceeded").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #e53935;">Budget Exceeded</h1>
  <p>Hello {{.UserName}},</p>
  <p>Your <strong>{{.BudgetName}}</strong> budget has been exceeded by
    <strong>{{.Currency}} {{printf "%.2f" .ExceededBy}}</strong>.</p>
  <ul>
    <li>Total budget: {{.Currency}} {{printf "%.2f" .Amount}}</li>
    <li>Amount spent: {{.Currency}} {{printf "%.2f" .Spent}}</li>
    <li>Over budget by: {{.Currency}} {{printf "%.2f" .ExceededBy}}</li>
  </ul>
  {{if .Tips}}
  <h3>Getting back on track</h3>
  <ul>
    {{range .Tips}}<li>{{.}}</li>{{end}}
  </ul>
  {{end}}
  <p style="color: #999; font-size: 12px;">This is an automated message from Money Map.
    You can manage your notification preferences in the app settings.</p>
</div>
`))
