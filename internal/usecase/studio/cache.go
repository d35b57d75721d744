package studio

import domain "github.com/BruksfildServices01/photo-studio/internal/domain/studio"

// Toda escrita no cache monta uma lista nova e troca a referência.

func (s *Studio) appendClient(c domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Client, 0, len(s.clients)+1)
	next = append(next, s.clients...)
	s.clients = append(next, c)
}

func (s *Studio) replaceClient(c domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Client, len(s.clients))
	found := false
	for i, cur := range s.clients {
		if cur.ID == c.ID {
			next[i] = c
			found = true
			continue
		}
		next[i] = cur
	}
	if !found {
		next = append(next, c)
	}
	s.clients = next
}

func (s *Studio) removeClient(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Client, 0, len(s.clients))
	for _, c := range s.clients {
		if c.ID != id {
			next = append(next, c)
		}
	}
	s.clients = next
}

func (s *Studio) appendSession(sess domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Session, 0, len(s.sessions)+1)
	next = append(next, s.sessions...)
	s.sessions = append(next, sess)
}

// replaceSessions aplica versões novas por id; ids fora do cache são acrescentados.
func (s *Studio) replaceSessions(updated ...domain.Session) {
	if len(updated) == 0 {
		return
	}

	byID := make(map[string]domain.Session, len(updated))
	for _, u := range updated {
		byID[u.ID] = u
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Session, len(s.sessions))
	for i, cur := range s.sessions {
		if u, ok := byID[cur.ID]; ok {
			next[i] = u
			delete(byID, cur.ID)
			continue
		}
		next[i] = cur
	}
	for _, u := range updated {
		if _, missing := byID[u.ID]; missing {
			next = append(next, u)
		}
	}
	s.sessions = next
}

func (s *Studio) removeSessions(ids ...string) {
	if len(ids) == 0 {
		return
	}

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if _, ok := drop[sess.ID]; !ok {
			next = append(next, sess)
		}
	}
	s.sessions = next
}
