package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"shortlink-qr/internal/geo"
	"shortlink-qr/internal/model"
	"shortlink-qr/internal/repository"
)

// memoryStore 以内存模拟唯一索引和原子自增
type memoryStore struct {
	mu     sync.Mutex
	nextID uint
	links  map[string]*model.ShortLink
	visits []model.Visit

	findErr      error
	createErr    error
	visitErr     error
	incrementErr error

	// 在 FindByCode 与 Create 之间让并发请求都看到"未占用"
	findDelay time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{links: make(map[string]*model.ShortLink)}
}

func (s *memoryStore) FindByCode(_ context.Context, code string) (*model.ShortLink, error) {
	if s.findDelay > 0 {
		defer time.Sleep(s.findDelay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	link, ok := s.links[code]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *link
	return &cp, nil
}

func (s *memoryStore) Create(_ context.Context, link *model.ShortLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	if _, ok := s.links[link.ShortCode]; ok {
		return repository.ErrDuplicateCode
	}
	s.nextID++
	link.ID = s.nextID
	cp := *link
	s.links[link.ShortCode] = &cp
	return nil
}

func (s *memoryStore) IncrementClicks(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.incrementErr != nil {
		return s.incrementErr
	}
	for _, l := range s.links {
		if l.ID == id {
			l.Clicks++
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *memoryStore) AppendVisit(_ context.Context, visit *model.Visit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.visitErr != nil {
		return s.visitErr
	}
	visit.ID = uint(len(s.visits) + 1)
	s.visits = append(s.visits, *visit)
	return nil
}

func (s *memoryStore) FindWithVisits(ctx context.Context, code string) (*model.ShortLink, []model.Visit, error) {
	link, err := s.FindByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	visits := make([]model.Visit, 0)
	for _, v := range s.visits {
		if v.ShortLinkID == link.ID {
			visits = append(visits, v)
		}
	}
	sort.Slice(visits, func(i, j int) bool { return visits[i].ID < visits[j].ID })
	return link, visits, nil
}

type fixedLocator geo.Location

func (f fixedLocator) Lookup(string) geo.Location { return geo.Location(f) }

// memoryQRCache 记录写入次数
type memoryQRCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	sets    int
	getErr  error
	setErr  error
}

func newMemoryQRCache() *memoryQRCache {
	return &memoryQRCache{entries: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (c *memoryQRCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	data, ok := c.entries[key]
	return data, ok, nil
}

func (c *memoryQRCache) SetWithTTL(_ context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.sets++
	c.entries[key] = data
	c.ttls[key] = ttl
	return nil
}

type countingRenderer struct {
	calls int
	out   []byte
	err   error
}

func (r *countingRenderer) Render(content string) ([]byte, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return append([]byte(nil), r.out...), nil
}

var errStoreDown = errors.New("connection refused")
