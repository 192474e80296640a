package utils

import (
	"bytes"
	"html/template"

	"restaurant_ordering/model"
	"restaurant_ordering/ordering"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// OrderMailData is the data the mail templates render.
type OrderMailData struct {
	OrderNo       string
	CustomerName  string
	TotalPrice    string
	PaymentMethod string
	Table         string
	Date          string
	Time          string
}

var (
	paymentTemplate = template.Must(template.New("payment").Parse(`<p>Hi {{.CustomerName}},</p>
<p>We received your payment of <b>{{.TotalPrice}}</b> ({{.PaymentMethod}}) for order <b>{{.OrderNo}}</b>.</p>
{{if .Table}}<p>Your table {{.Table}} is booked for {{.Date}} at {{.Time}}.</p>{{end}}
<p>Thank you!</p>`))
	cancelTemplate = template.Must(template.New("cancel").Parse(`<p>Hi {{.CustomerName}},</p>
<p>Your order <b>{{.OrderNo}}</b> has been cancelled.</p>
{{if .Table}}<p>The reservation for table {{.Table}} on {{.Date}} at {{.Time}} was released.</p>{{end}}`))
)

// MailNotifier emails the reservation contact. Orders without a
// reservation email are skipped.
type MailNotifier struct {
	settings SMTPSettings
	logger   *zap.Logger
	send     func(m *gomail.Message) error
}

var _ ordering.Notifier = (*MailNotifier)(nil)

func NewMailNotifier(settings SMTPSettings, logger *zap.Logger) *MailNotifier {
	d := gomail.NewDialer(settings.Host, settings.Port, settings.Username, settings.Password)
	return &MailNotifier{
		settings: settings,
		logger:   logger,
		send:     func(m *gomail.Message) error { return d.DialAndSend(m) },
	}
}

func MailData(order model.Order) OrderMailData {
	data := OrderMailData{
		OrderNo:       order.OrderNo,
		CustomerName:  order.CustomerName,
		TotalPrice:    order.TotalPrice.StringFixed(2),
		PaymentMethod: string(order.PaymentMethod),
	}
	if r := order.TableReservation; r != nil {
		data.Table = r.TableNumber
		data.Date = r.ReservationDate.String()
		data.Time = r.ReservationTime
		if r.CustomerName != "" {
			data.CustomerName = r.CustomerName
		}
	}
	return data
}

func (n *MailNotifier) PaymentConfirmed(order model.Order) {
	n.deliver(order, "Payment received for "+order.OrderNo, paymentTemplate)
}

func (n *MailNotifier) OrderCancelled(order model.Order) {
	n.deliver(order, "Order "+order.OrderNo+" cancelled", cancelTemplate)
}

func (n *MailNotifier) deliver(order model.Order, subject string, tmpl *template.Template) {
	if order.TableReservation == nil || order.TableReservation.CustomerEmail == "" {
		return
	}
	to := order.TableReservation.CustomerEmail
	data := MailData(order)
	go func() {
		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			n.logger.Error("render mail template", zap.String("order_no", data.OrderNo), zap.Error(err))
			return
		}
		m := gomail.NewMessage()
		m.SetHeader("From", n.settings.From)
		m.SetHeader("To", to)
		m.SetHeader("Subject", subject)
		m.SetBody("text/html", body.String())
		if err := n.send(m); err != nil {
			n.logger.Warn("send mail failed", zap.String("order_no", data.OrderNo), zap.String("to", to), zap.Error(err))
		}
	}()
}
