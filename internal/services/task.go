package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventplanner/internal/domain"
)

type taskService struct {
	eventScope
	tx        domain.Transactor
	taskRepo  domain.TaskRepository
	generator domain.ContentGenerator
	timeouts  Timeouts
}

func NewTaskService(tx domain.Transactor, perms domain.PermissionEvaluator, eventRepo domain.EventRepository,
	taskRepo domain.TaskRepository, generator domain.ContentGenerator, timeouts Timeouts) domain.TaskService {
	return &taskService{
		eventScope: eventScope{perms: perms, events: eventRepo},
		tx:         tx,
		taskRepo:   taskRepo,
		generator:  generator,
		timeouts:   timeouts,
	}
}

func (s *taskService) ListTasks(ctx context.Context, eventID, actorID string) ([]*domain.TaskAssignment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionView); err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []*domain.TaskAssignment{}
	}
	return tasks, nil
}

func (s *taskService) CreateTask(ctx context.Context, eventID, actorID string, t *domain.TaskAssignment) (*domain.TaskAssignment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionEdit); err != nil {
		return nil, err
	}
	t.EventID = eventID
	t.StartTime = t.StartTime.UTC()
	t.EndTime = t.EndTime.UTC()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

func (s *taskService) GetTask(ctx context.Context, eventID, taskID, actorID string) (*domain.TaskAssignment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionView); err != nil {
		return nil, err
	}
	return s.load(ctx, eventID, taskID)
}

func (s *taskService) load(ctx context.Context, eventID, taskID string) (*domain.TaskAssignment, error) {
	t, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, notFoundOr(err, "get task")
	}
	if err := belongsTo(eventID, t.EventID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *taskService) UpdateTask(ctx context.Context, eventID, taskID, actorID string, patch domain.TaskPatch) (*domain.TaskAssignment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionEdit); err != nil {
		return nil, err
	}
	t, err := s.load(ctx, eventID, taskID)
	if err != nil {
		return nil, err
	}
	patch.Apply(t)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Update(ctx, t); err != nil {
		return nil, notFoundOr(err, "update task")
	}
	return t, nil
}

func (s *taskService) DeleteTask(ctx context.Context, eventID, taskID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionManage); err != nil {
		return err
	}
	if _, err := s.load(ctx, eventID, taskID); err != nil {
		return err
	}
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return notFoundOr(err, "delete task")
	}
	return nil
}

func (s *taskService) GenerateTasks(ctx context.Context, eventID, actorID string) ([]*domain.TaskAssignment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Generation)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionEdit); err != nil {
		return nil, err
	}
	e, err := s.event(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var roster domain.TaskRoster
	if err := s.generator.Generate(ctx, domain.PromptTaskRoster, promptInput{Event: e}, &roster); err != nil {
		return nil, err
	}

	tasks := make([]*domain.TaskAssignment, 0, len(roster.Tasks))
	for i, entry := range roster.Tasks {
		t := &domain.TaskAssignment{
			EventID:     eventID,
			Role:        strings.TrimSpace(entry.Role),
			Description: entry.Description,
			Count:       max(entry.Count, 0),
			StartTime:   rosterTime(entry.StartTime, e.StartTime),
			EndTime:     rosterTime(entry.EndTime, e.EndTime),
		}
		if t.EndTime.Before(t.StartTime) {
			t.EndTime = t.StartTime
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%w: task %d: %v", domain.ErrUpstreamGeneration, i, err)
		}
		tasks = append(tasks, t)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.taskRepo.ReplaceForEvent(ctx, eventID, tasks); err != nil {
			return fmt.Errorf("replace tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

var rosterClockLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM"}

// rosterTime reads a roster timestamp. Clock-only values are placed on the fallback's date;
// anything unreadable yields the fallback.
func rosterTime(raw string, fallback time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse("2006-01-02 15:04", raw); err == nil {
		return t.UTC()
	}
	day := fallback.UTC()
	for _, layout := range rosterClockLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
		}
	}
	return fallback
}
