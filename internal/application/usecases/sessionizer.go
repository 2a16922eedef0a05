package usecases

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/funnelworks/funnel-intelligence-api/internal/domain/entities"
)

// DefaultInactivityThreshold é o intervalo padrão de inatividade (30 min)
// que separa duas sessões do mesmo visitante.
const DefaultInactivityThreshold = 1800 * time.Second

// SessionizerConfig contém a configuração do sessionizador
type SessionizerConfig struct {
	InactivityThreshold time.Duration
}

func DefaultSessionizerConfig() SessionizerConfig {
	return SessionizerConfig{InactivityThreshold: DefaultInactivityThreshold}
}

// SessionizerConfigFromEnv monta a configuração a partir de
// SESSION_INACTIVITY_SECONDS, mantendo o padrão quando ausente
func SessionizerConfigFromEnv() (SessionizerConfig, error) {
	cfg := DefaultSessionizerConfig()
	if raw := os.Getenv("SESSION_INACTIVITY_SECONDS"); raw != "" {
		seconds, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("SESSION_INACTIVITY_SECONDS inválido: %q", raw)
		}
		cfg.InactivityThreshold = time.Duration(seconds) * time.Second
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejeita configurações inválidas antes de qualquer processamento
func (c SessionizerConfig) Validate() error {
	if c.InactivityThreshold < 0 {
		return fmt.Errorf("inactivity threshold não pode ser negativo: %v", c.InactivityThreshold)
	}
	return nil
}

// SessionizeResult é a saída completa de uma passada do sessionizador
type SessionizeResult struct {
	Events   []entities.SessionizedEvent
	Sessions []entities.Session
	// RejectedEvents conta eventos sem visitor_id ou event_time,
	// excluídos da sessionização mas nunca descartados em silêncio
	RejectedEvents int64
}

// Sessionizer particiona um stream de eventos em sessões pela regra de
// intervalo de inatividade. É uma transformação pura: nenhum estado
// externo, entrada imutável, resultado determinístico.
type Sessionizer struct {
	cfg SessionizerConfig
}

func NewSessionizer(cfg SessionizerConfig) (*Sessionizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Sessionizer{cfg: cfg}, nil
}

// Sessionize atribui cada evento válido a exatamente uma sessão e deriva
// os agregados por sessão. Partições de visitantes são independentes e
// processadas em paralelo; a saída é reordenada ao final para que duas
// execuções sobre a mesma entrada produzam resultados idênticos.
func (s *Sessionizer) Sessionize(events []entities.Event) SessionizeResult {
	var result SessionizeResult

	// Particionar por visitante, excluindo e contando os malformados
	partitions := make(map[int64][]entities.Event)
	for _, event := range events {
		if !event.HasRequiredFields() {
			result.RejectedEvents++
			continue
		}
		partitions[*event.VisitorID] = append(partitions[*event.VisitorID], event)
	}

	var wg sync.WaitGroup
	var resultMutex sync.Mutex

	for _, partition := range partitions {
		wg.Add(1)
		go func(partition []entities.Event) {
			defer wg.Done()

			sessionized, sessions := s.sessionizeVisitor(partition)

			resultMutex.Lock()
			result.Events = append(result.Events, sessionized...)
			result.Sessions = append(result.Sessions, sessions...)
			resultMutex.Unlock()
		}(partition)
	}
	wg.Wait()

	// Ordem final não pode depender do escalonamento das goroutines
	sort.Slice(result.Events, func(i, j int) bool {
		a, b := result.Events[i], result.Events[j]
		if a.VisitorID != b.VisitorID {
			return a.VisitorID < b.VisitorID
		}
		if !a.EventTime.Equal(b.EventTime) {
			return a.EventTime.Before(b.EventTime)
		}
		return a.IngestionID < b.IngestionID
	})
	sort.Slice(result.Sessions, func(i, j int) bool {
		a, b := result.Sessions[i], result.Sessions[j]
		if a.VisitorID != b.VisitorID {
			return a.VisitorID < b.VisitorID
		}
		return a.SessionSequence < b.SessionSequence
	})

	return result
}

// sessionizeVisitor executa o fold sequencial sobre a partição de um
// visitante: ordena por (event_time, ingestion_id) e abre uma nova sessão
// quando o intervalo desde o evento anterior EXCEDE o limite. Intervalo
// igual ao limite permanece na mesma sessão.
func (s *Sessionizer) sessionizeVisitor(partition []entities.Event) ([]entities.SessionizedEvent, []entities.Session) {
	sort.SliceStable(partition, func(i, j int) bool {
		ti := *partition[i].EventTime
		tj := *partition[j].EventTime
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return partition[i].IngestionID < partition[j].IngestionID
	})

	sessionized := make([]entities.SessionizedEvent, 0, len(partition))
	var sessions []entities.Session

	var prevTime time.Time
	hasPrev := false
	sessionSeq := 0
	position := 0
	var current *entities.Session

	for _, event := range partition {
		visitorID := *event.VisitorID
		eventTime := event.EventTime.UTC()

		if !hasPrev || eventTime.Sub(prevTime) > s.cfg.InactivityThreshold {
			sessionSeq++
			position = 0
			sessions = append(sessions, entities.Session{
				SessionID:       fmt.Sprintf("%d_%d", visitorID, sessionSeq),
				VisitorID:       visitorID,
				SessionSequence: sessionSeq,
				StartTime:       eventTime,
				EndTime:         eventTime,
			})
			current = &sessions[len(sessions)-1]
		}
		position++

		current.EndTime = eventTime
		current.DurationSeconds = int64(current.EndTime.Sub(current.StartTime) / time.Second)
		current.TotalEvents++
		switch event.EventType {
		case entities.EventTypeView:
			current.ViewCount++
		case entities.EventTypeAddToCart:
			current.AddtocartCount++
		case entities.EventTypeTransaction:
			current.TransactionCount++
			current.HasTransaction = true
		}

		sessionized = append(sessionized, entities.SessionizedEvent{
			IngestionID:       event.IngestionID,
			VisitorID:         visitorID,
			EventTime:         eventTime,
			EventType:         event.EventType,
			ItemID:            event.ItemID,
			TransactionID:     event.TransactionID,
			SessionID:         current.SessionID,
			SessionSequence:   sessionSeq,
			PositionInSession: position,
		})

		prevTime = eventTime
		hasPrev = true
	}

	return sessionized, sessions
}
