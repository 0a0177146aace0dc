package apiclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/jellyctl/jellyctl/pkg/endpoint"
	"github.com/jellyctl/jellyctl/pkg/models"
)

type TasksService service

func (s *TasksService) List(ctx context.Context) ([]models.TaskInfo, error) {
	outcome, err := s.client.Get(ctx, s.client.URL(endpoint.ScheduledTasks, nil), nil)
	if err != nil {
		return nil, err
	}

	tasks := []models.TaskInfo{}
	if err := outcome.Decode(&tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (s *TasksService) FindByName(ctx context.Context, name string) (*models.TaskInfo, error) {
	tasks, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		if strings.EqualFold(tasks[i].Name, name) {
			return &tasks[i], nil
		}
	}

	return nil, fmt.Errorf("task %q not found", name)
}

func (s *TasksService) Start(ctx context.Context, taskID string) error {
	u, err := endpoint.New(endpoint.RunningTask).With("taskId", taskID).Build(s.client.BaseURL)
	if err != nil {
		return err
	}

	outcome, err := s.client.Post(ctx, u, nil, nil, "")
	if err != nil {
		return err
	}

	return outcome.Err()
}
