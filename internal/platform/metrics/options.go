package metrics

// Option aplica una configuración al Manager.
type Option func(*Manager)

// WithNamespace define el namespace de todas las métricas.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem define el subsystem de todas las métricas.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithHistogramBuckets reemplaza los buckets de latencia (segundos).
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.buckets = buckets
		}
	}
}

// WithGoCollectors agrega las métricas de runtime y proceso.
func WithGoCollectors() Option {
	return func(m *Manager) {
		m.goCollectors = true
	}
}
