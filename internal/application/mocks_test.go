package application

import (
	"context"
	"sync"

	"github.com/taskord/taskord-api/internal/domain/entity"
	"github.com/taskord/taskord-api/internal/domain/repository"
)

// In-memory repository fakes mirroring the storage contract, including the
// task -> comment cascade and the comment subtree cascade.

type memStore struct {
	mu          sync.Mutex
	users       map[string]*entity.User
	tasks       map[int64]*entity.Task
	comments    map[int64]*entity.Comment
	nextTask    int64
	nextComment int64
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*entity.User),
		tasks:    make(map[int64]*entity.Task),
		comments: make(map[int64]*entity.Comment),
	}
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.Username]; ok {
		return repository.ErrDuplicate
	}
	u.ID = "user-" + u.Username
	r.s.users[u.Username] = u
	return nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

type memTaskRepo struct{ s *memStore }

func (r *memTaskRepo) List(_ context.Context) ([]*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Task, 0, len(r.s.tasks))
	for i := int64(1); i <= r.s.nextTask; i++ {
		if t, ok := r.s.tasks[i]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) GetByID(_ context.Context, id int64) (*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (r *memTaskRepo) Create(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextTask++
	t.ID = r.s.nextTask
	r.s.tasks[t.ID] = t
	return nil
}

func (r *memTaskRepo) Update(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tasks[t.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.tasks[t.ID] = t
	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.tasks, id)
	// FK cascade
	for cid, c := range r.s.comments {
		if c.TaskID == id {
			delete(r.s.comments, cid)
		}
	}
	return nil
}

type memCommentRepo struct{ s *memStore }

func (r *memCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextComment++
	c.ID = r.s.nextComment
	r.s.comments[c.ID] = c
	return nil
}

func (r *memCommentRepo) GetByID(_ context.Context, id int64) (*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (r *memCommentRepo) UpdateText(_ context.Context, id int64, text string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Text = text
	c.IsUpdated = true
	return nil
}

func (r *memCommentRepo) DeleteSubtree(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comments[id]; !ok {
		return repository.ErrNotFound
	}
	doomed := map[int64]bool{id: true}
	for {
		grew := false
		for cid, c := range r.s.comments {
			if doomed[cid] || c.ParentCommentID == nil {
				continue
			}
			if doomed[*c.ParentCommentID] {
				doomed[cid] = true
				grew = true
			}
		}
		if !grew {
			break
		}
	}
	for cid := range doomed {
		delete(r.s.comments, cid)
	}
	return nil
}

func (r *memCommentRepo) ListByTask(_ context.Context, taskID int64) ([]*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Comment, 0)
	for i := int64(1); i <= r.s.nextComment; i++ {
		if c, ok := r.s.comments[i]; ok && c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out, nil
}

var (
	_ repository.UserRepository    = (*memUserRepo)(nil)
	_ repository.TaskRepository    = (*memTaskRepo)(nil)
	_ repository.CommentRepository = (*memCommentRepo)(nil)
)

// recordingPublisher captures events that services publish.
type recordingPublisher struct {
	mu     sync.Mutex
	bodies []any
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bodies = append(p.bodies, body)
	return nil
}
