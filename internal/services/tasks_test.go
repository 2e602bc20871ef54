package services

import (
	"testing"

	"github.com/monocle-dev/planboard/internal/apperr"
	"github.com/monocle-dev/planboard/internal/types"
)

func TestTaskLifecycle(t *testing.T) {
	f := newFixture(t)
	alice, aliceUser := f.register(t, "Alice", "alice@example.com")
	_, bobUser := f.register(t, "Bob", "bob@example.com")
	project := f.project(t, alice, "Apollo")
	issue := f.issue(t, alice, project.ID, "Launch")

	task, err := f.svc.CreateTask(f.ctx, alice, project.ID, issue.ID, types.CreateTaskRequest{
		Title:      " Fuel the rocket ",
		AssigneeID: &bobUser.ID,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if task.Title != "Fuel the rocket" || task.Status != "TODO" {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.ProjectID != project.ID || task.IssueID != issue.ID || task.CreatorID != aliceUser.ID {
		t.Fatalf("unexpected ownership: %+v", task)
	}
	if task.AssigneeID == nil || *task.AssigneeID != bobUser.ID {
		t.Fatalf("expected Bob as assignee: %+v", task)
	}

	status := "DONE"
	blank := "   "
	updated, err := f.svc.UpdateTask(f.ctx, alice, project.ID, issue.ID, task.ID, types.UpdateTaskRequest{Status: &status, Description: &blank})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Status != "DONE" || updated.Title != task.Title || updated.Description != "" {
		t.Fatalf("unexpected partial update: %+v", updated)
	}

	tasks, err := f.svc.ListTasks(f.ctx, alice, project.ID, issue.ID)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Status != "DONE" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}

	if err := f.svc.DeleteTask(f.ctx, alice, project.ID, issue.ID, task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if err := f.svc.DeleteTask(f.ctx, alice, project.ID, issue.ID, task.ID); !apperr.IsNotFound(err, apperr.KindTask) {
		t.Fatalf("expected task not found, got %v", err)
	}
}

func TestTaskRequiresIssueInProject(t *testing.T) {
	f := newFixture(t)
	alice, _ := f.register(t, "Alice", "alice@example.com")
	bob, _ := f.register(t, "Bob", "bob@example.com")
	apollo := f.project(t, alice, "Apollo")
	gemini := f.project(t, alice, "Gemini")
	issue := f.issue(t, alice, apollo.ID, "Launch")

	if _, err := f.svc.CreateTask(f.ctx, alice, gemini.ID, issue.ID, types.CreateTaskRequest{Title: "x"}); !apperr.IsNotFound(err, apperr.KindIssue) {
		t.Fatalf("expected issue not found, got %v", err)
	}
	if _, err := f.svc.CreateTask(f.ctx, bob, apollo.ID, issue.ID, types.CreateTaskRequest{Title: "x"}); !isNotAuthorized(err) {
		t.Fatalf("expected not authorized, got %v", err)
	}

	task, err := f.svc.CreateTask(f.ctx, alice, apollo.ID, issue.ID, types.CreateTaskRequest{Title: "x"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	other := f.issue(t, alice, apollo.ID, "Other")
	title := "moved"
	if _, err := f.svc.UpdateTask(f.ctx, alice, apollo.ID, other.ID, task.ID, types.UpdateTaskRequest{Title: &title}); !apperr.IsNotFound(err, apperr.KindTask) {
		t.Fatalf("expected task not found under another issue, got %v", err)
	}
}

func TestTestCaseLifecycle(t *testing.T) {
	f := newFixture(t)
	alice, _ := f.register(t, "Alice", "alice@example.com")
	bob, _ := f.register(t, "Bob", "bob@example.com")
	project := f.project(t, alice, "Apollo")
	issue := f.issue(t, alice, project.ID, "Launch")

	test, err := f.svc.CreateTest(f.ctx, alice, project.ID, issue.ID, types.CreateTestRequest{
		Name:        "ignition",
		ProgramCode: "func ignite() {}",
		TestCode:    "func TestIgnite(t *testing.T) {}",
	})
	if err != nil {
		t.Fatalf("CreateTest: %v", err)
	}
	if test.IssueID != issue.ID {
		t.Fatalf("unexpected issue id: %+v", test)
	}

	empty := ""
	updated, err := f.svc.UpdateTest(f.ctx, alice, project.ID, issue.ID, test.ID, types.UpdateTestRequest{ProgramCode: &empty})
	if err != nil {
		t.Fatalf("UpdateTest: %v", err)
	}
	if updated.ProgramCode != "" || updated.TestCode != test.TestCode || updated.Name != "ignition" {
		t.Fatalf("unexpected partial update: %+v", updated)
	}

	if _, err := f.svc.ListTests(f.ctx, bob, project.ID, issue.ID); !isNotAuthorized(err) {
		t.Fatalf("expected not authorized, got %v", err)
	}

	tests, err := f.svc.ListTests(f.ctx, alice, project.ID, issue.ID)
	if err != nil {
		t.Fatalf("ListTests: %v", err)
	}
	if len(tests) != 1 {
		t.Fatalf("expected one test, got %d", len(tests))
	}

	if err := f.svc.DeleteTest(f.ctx, alice, project.ID, issue.ID, test.ID); err != nil {
		t.Fatalf("DeleteTest: %v", err)
	}
	if _, err := f.svc.UpdateTest(f.ctx, alice, project.ID, issue.ID, test.ID, types.UpdateTestRequest{}); !apperr.IsNotFound(err, apperr.KindTest) {
		t.Fatalf("expected test not found, got %v", err)
	}
}
