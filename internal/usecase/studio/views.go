package studio

import domain "github.com/BruksfildServices01/photo-studio/internal/domain/studio"

// Leituras derivadas do cache. Sempre recalculadas; nunca uma visão viva.

func (s *Studio) DashboardStats() domain.DashboardStats {
	s.mu.RLock()
	clients, sessions := s.clients, s.sessions
	s.mu.RUnlock()

	return domain.CalculateDashboardStats(clients, sessions, s.now())
}

func (s *Studio) UpcomingSessions(limit int) []domain.Session {
	s.mu.RLock()
	sessions := s.sessions
	s.mu.RUnlock()

	return domain.UpcomingSessions(sessions, s.now(), limit)
}

func (s *Studio) SessionSummary(filter domain.SessionFilter) domain.SessionSummary {
	return domain.SummarizeSessions(s.ListSessions(filter))
}

// FindSession procura no cache.
func (s *Studio) FindSession(id string) (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess, true
		}
	}
	return domain.Session{}, false
}

// Snapshot devolve as listas atuais para exportação.
func (s *Studio) Snapshot() ([]domain.Client, []domain.Session) {
	st := s.State()
	return st.Clients, st.Sessions
}

func (s *Studio) FindClient(id string) (domain.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.clients {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Client{}, false
}
