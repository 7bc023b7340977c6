package rabbitmq

// Option configures the RabbitMQ transport.
type Option func(*options)

// Binding attaches the consume queue to an exchange.
type Binding struct {
	Exchange   string
	Kind       string // direct, fanout, topic, headers
	RoutingKey string
}

type options struct {
	// Queue settings
	queue      string
	durable    bool
	autoDelete bool
	exclusive  bool
	bindings   []Binding

	// Consumer settings
	prefetchCount int

	// Publisher settings
	contentType string
}

func defaults() options {
	return options{
		queue:         "brokermux",
		durable:       true,
		prefetchCount: 10,
		contentType:   "application/octet-stream",
	}
}

// WithQueue sets the queue deliveries are consumed from.
func WithQueue(name string) Option {
	return func(o *options) { o.queue = name }
}

// WithBinding declares the exchange and binds the consume queue to it.
// Call it once per listener exchange.
func WithBinding(exchange, kind, routingKey string) Option {
	return func(o *options) {
		o.bindings = append(o.bindings, Binding{Exchange: exchange, Kind: kind, RoutingKey: routingKey})
	}
}

// WithDurable controls whether queues and exchanges survive broker restart.
func WithDurable(d bool) Option {
	return func(o *options) { o.durable = d }
}

// WithPrefetchCount sets how many messages are delivered before requiring ack.
func WithPrefetchCount(n int) Option {
	return func(o *options) { o.prefetchCount = n }
}

// WithAutoDelete causes the queue to be deleted when the last consumer disconnects.
func WithAutoDelete(d bool) Option {
	return func(o *options) { o.autoDelete = d }
}

// WithExclusive restricts the queue to this connection.
func WithExclusive(e bool) Option {
	return func(o *options) { o.exclusive = e }
}

// WithContentType sets the content type stamped on published messages.
func WithContentType(ct string) Option {
	return func(o *options) { o.contentType = ct }
}
