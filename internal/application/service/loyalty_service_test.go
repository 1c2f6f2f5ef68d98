package service

import (
	"context"
	"testing"
	"time"
)

func TestEnrollThenAdvanceThroughLadder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	enrolled, err := env.loyalty.IsEnrolled(ctx, env.customerID)
	if err != nil {
		t.Fatalf("is enrolled failed: %v", err)
	}
	if enrolled {
		t.Fatalf("fresh customer must not be enrolled")
	}

	if err := env.loyalty.EnrollCustomer(ctx, env.customerID); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	latest, reward, err := env.loyalty.LatestCompletedStage(ctx, env.customerID)
	if err != nil {
		t.Fatalf("latest stage failed: %v", err)
	}
	if latest == nil || latest.StageOrder != 1 {
		t.Fatalf("expected stage 1 after enrollment, got %+v", latest)
	}
	if reward != nil {
		t.Fatalf("stage 1 carries no reward, got %+v", reward)
	}

	complete, err := env.loyalty.MarkNextStageDone(ctx, env.customerID)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if complete {
		t.Fatalf("stage 2 of 3 must not complete the ladder")
	}

	complete, err = env.loyalty.MarkNextStageDone(ctx, env.customerID)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if !complete {
		t.Fatalf("stage 3 of 3 must complete the ladder")
	}

	latest, reward, err = env.loyalty.LatestCompletedStage(ctx, env.customerID)
	if err != nil {
		t.Fatalf("latest stage failed: %v", err)
	}
	if latest.StageOrder != 3 {
		t.Fatalf("expected stage 3, got %d", latest.StageOrder)
	}
	if reward == nil || !reward.IsItem() {
		t.Fatalf("expected physical reward at the final stage")
	}
}

func TestAdvancePastFinalStageIsIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if err := env.loyalty.EnrollCustomer(ctx, env.customerID); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := env.loyalty.MarkNextStageDone(ctx, env.customerID); err != nil {
			t.Fatalf("advance failed: %v", err)
		}
	}

	complete, err := env.loyalty.MarkNextStageDone(ctx, env.customerID)
	if err != nil {
		t.Fatalf("advance past final failed: %v", err)
	}
	if !complete {
		t.Fatalf("finished ladder must keep reporting complete")
	}

	stages, err := env.loyalty.loyaltyRepo.ListCustomerStages(ctx, env.customerID)
	if err != nil {
		t.Fatalf("list stages failed: %v", err)
	}
	if len(stages) != 3 {
		t.Fatalf("expected 3 progress rows, got %d", len(stages))
	}
}

func TestStageCompletionStampsBusinessClock(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if err := env.loyalty.EnrollCustomer(ctx, env.customerID); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if _, err := env.loyalty.MarkNextStageDone(ctx, env.customerID); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	stages, err := env.loyalty.loyaltyRepo.ListCustomerStages(ctx, env.customerID)
	if err != nil {
		t.Fatalf("list stages failed: %v", err)
	}

	// The fixture pins the clock at 2024-06-15 03:00 UTC, 11:00 business time.
	want := time.Date(2024, 6, 15, 3, 0, 0, 0, time.UTC)
	for _, stage := range stages {
		if stage.DateDone == nil {
			t.Fatalf("completed stage missing its timestamp")
		}
		if !stage.DateDone.Equal(want) {
			t.Fatalf("expected completion at %v, got %v", want, *stage.DateDone)
		}
		if stage.DateDone.Hour() != 11 {
			t.Fatalf("expected business-zone hour 11, got %d", stage.DateDone.Hour())
		}
	}
}
