package controllers

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nova-properties/backend/models"
	"github.com/nova-properties/backend/store"
)

type fakeUserStore struct {
	mu        sync.Mutex
	users     map[primitive.ObjectID]models.User
	byIDCalls int
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[primitive.ObjectID]models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = *user
	return user.ID, nil
}

func (s *fakeUserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeUserStore) ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byIDCalls++
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyUser(u), nil
}

func (s *fakeUserStore) UpdateFavourites(ctx context.Context, id primitive.ObjectID, favourites []primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.Favourites = append([]primitive.ObjectID(nil), favourites...)
	s.users[id] = u
	return nil
}

func (s *fakeUserStore) put(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *fakeUserStore) stored(id primitive.ObjectID) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

func copyUser(u models.User) *models.User {
	u.Favourites = append([]primitive.ObjectID(nil), u.Favourites...)
	return &u
}

type fakePropertyStore struct {
	mu         sync.Mutex
	properties map[primitive.ObjectID]models.Property
	byIDCalls  int
	pageSkip   int64
	pageLimit  int64
}

func newFakePropertyStore(properties ...models.Property) *fakePropertyStore {
	s := &fakePropertyStore{properties: make(map[primitive.ObjectID]models.Property)}
	for _, p := range properties {
		s.properties[p.ID] = p
	}
	return s
}

func (s *fakePropertyStore) Page(ctx context.Context, skip, limit int64) ([]models.Property, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageSkip, s.pageLimit = skip, limit

	all := make([]models.Property, 0, len(s.properties))
	for _, p := range s.properties {
		all = append(all, p)
	}
	total := int64(len(all))
	if skip >= total {
		return []models.Property{}, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return all[skip:end], total, nil
}

func (s *fakePropertyStore) Featured(ctx context.Context, limit int64) ([]models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Property{}
	for _, p := range s.properties {
		if int64(len(out)) == limit {
			break
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *fakePropertyStore) ByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byIDCalls++
	p, ok := s.properties[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *fakePropertyStore) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Property{}
	for _, id := range ids {
		if p, ok := s.properties[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePropertyStore) add(p models.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties[p.ID] = p
}

type fakeAgentStore struct {
	agents []models.Agent
}

func (s *fakeAgentStore) List(ctx context.Context, limit int64) ([]models.Agent, error) {
	if int64(len(s.agents)) > limit {
		return s.agents[:limit], nil
	}
	return s.agents, nil
}

func (s *fakeAgentStore) ByID(ctx context.Context, id primitive.ObjectID) (*models.Agent, error) {
	for _, a := range s.agents {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeTestimonialStore struct {
	testimonials []models.Testimonial
}

func (s *fakeTestimonialStore) List(ctx context.Context, limit int64) ([]models.Testimonial, error) {
	if int64(len(s.testimonials)) > limit {
		return s.testimonials[:limit], nil
	}
	return s.testimonials, nil
}

type fakeMessageStore struct {
	mu       sync.Mutex
	messages []models.UserMessage
	err      error
}

func (s *fakeMessageStore) Insert(ctx context.Context, msg *models.UserMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	msg.ID = primitive.NewObjectID()
	s.messages = append(s.messages, *msg)
	return nil
}
