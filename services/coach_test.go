package services

import (
	"context"
	"errors"
	"testing"

	"life-os-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCoachClient struct {
	answer   string
	err      error
	persona  string
	input    string
	snapshot CoachContext
	calls    int
}

func (f *fakeCoachClient) Advise(_ context.Context, persona, userInput string, snapshot CoachContext) (string, error) {
	f.calls++
	f.persona = persona
	f.input = userInput
	f.snapshot = snapshot
	return f.answer, f.err
}

func TestBuildContextSnapshotsUserState(t *testing.T) {
	db := newTestDB(t)
	svc := NewCoachService(db, &fakeCoachClient{})
	user := seedUser(t, db, "ada")
	user.Level = 4
	user.Exp = 73
	user.ChronoPoints = 12
	require.NoError(t, db.Save(user).Error)

	require.NoError(t, db.Create(&models.Task{UserID: user.ID, Title: "write report"}).Error)
	require.NoError(t, db.Create(&models.Task{UserID: user.ID, Title: "old chore", Completed: true}).Error)
	require.NoError(t, db.Create(&models.Habit{UserID: user.ID, Name: "run", Streak: 6}).Error)

	snapshot, err := svc.BuildContext(user.ID, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, snapshot.UserLevel)
	assert.Equal(t, 73, snapshot.UserExp)
	assert.Equal(t, 12, snapshot.ChronoPoints)
	assert.Equal(t, []string{"write report"}, snapshot.PendingTasks)
	require.Len(t, snapshot.ActiveHabits, 1)
	assert.Equal(t, HabitStreak{Name: "run", Streak: 6}, snapshot.ActiveHabits[0])
}

func TestBuildContextFiltersByIdentityAndSkill(t *testing.T) {
	db := newTestDB(t)
	svc := NewCoachService(db, &fakeCoachClient{})
	user := seedUser(t, db, "ada")

	identity := models.Identity{UserID: user.ID, Name: "Athlete", Level: 1}
	require.NoError(t, db.Create(&identity).Error)
	skill := models.Skill{IdentityID: identity.ID, Name: "Running", Level: 1}
	require.NoError(t, db.Create(&skill).Error)

	require.NoError(t, db.Create(&models.Task{UserID: user.ID, Title: "tagged", IdentityID: &identity.ID}).Error)
	require.NoError(t, db.Create(&models.Task{UserID: user.ID, Title: "untagged"}).Error)
	require.NoError(t, db.Create(&models.Habit{UserID: user.ID, Name: "jog", SkillID: &skill.ID, Streak: 2}).Error)
	require.NoError(t, db.Create(&models.Habit{UserID: user.ID, Name: "meditate", Streak: 9}).Error)

	byIdentity, err := svc.BuildContext(user.ID, &identity.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"tagged"}, byIdentity.PendingTasks)
	assert.Len(t, byIdentity.ActiveHabits, 2)

	bySkill, err := svc.BuildContext(user.ID, nil, &skill.ID)
	require.NoError(t, err)
	assert.Empty(t, bySkill.PendingTasks)
	require.Len(t, bySkill.ActiveHabits, 1)
	assert.Equal(t, "jog", bySkill.ActiveHabits[0].Name)
}

func TestCoachIdentityUsesPersonaAndSnapshot(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeCoachClient{answer: "keep going"}
	svc := NewCoachService(db, fake)
	user := seedUser(t, db, "ada")

	identity := models.Identity{UserID: user.ID, Name: "Athlete", Level: 1, AICoachPersona: "drill sergeant"}
	require.NoError(t, db.Create(&identity).Error)
	require.NoError(t, db.Create(&models.Task{UserID: user.ID, Title: "sign up for race", IdentityID: &identity.ID}).Error)

	answer, err := svc.CoachIdentity(context.Background(), identity.ID, user.ID, "I want to quit")
	require.NoError(t, err)
	assert.Equal(t, "keep going", answer)
	assert.Equal(t, "drill sergeant", fake.persona)
	assert.Equal(t, "I want to quit", fake.input)
	assert.Equal(t, []string{"sign up for race"}, fake.snapshot.PendingTasks)
}

func TestCoachSkillForeignSkillIsNotFound(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeCoachClient{answer: "hi"}
	svc := NewCoachService(db, fake)
	owner := seedUser(t, db, "ada")
	intruder := seedUser(t, db, "eve")

	identity := models.Identity{UserID: owner.ID, Name: "Athlete", Level: 1}
	require.NoError(t, db.Create(&identity).Error)
	skill := models.Skill{IdentityID: identity.ID, Name: "Running", Level: 1, AICoachPersona: "zen"}
	require.NoError(t, db.Create(&skill).Error)

	_, err := svc.CoachSkill(context.Background(), skill.ID, intruder.ID, "help")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, fake.calls)
}

func TestCoachFailureSurfacesAsCoachUnavailable(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeCoachClient{err: errors.New("quota exceeded")}
	svc := NewCoachService(db, fake)
	user := seedUser(t, db, "ada")

	identity := models.Identity{UserID: user.ID, Name: "Athlete", Level: 1}
	require.NoError(t, db.Create(&identity).Error)

	_, err := svc.CoachIdentity(context.Background(), identity.ID, user.ID, "help")
	assert.ErrorIs(t, err, ErrCoachUnavailable)
}

func TestCoachPromptLayout(t *testing.T) {
	prompt := coachPrompt("stoic mentor", "what now?", CoachContext{
		UserLevel:    2,
		UserExp:      40,
		ChronoPoints: 7,
		PendingTasks: []string{"a", "b"},
		ActiveHabits: []HabitStreak{{Name: "run", Streak: 3}},
	})

	assert.Contains(t, prompt, "persona: stoic mentor")
	assert.Contains(t, prompt, "- Level: 2")
	assert.Contains(t, prompt, "- Pending Tasks: a, b")
	assert.Contains(t, prompt, "run (streak: 3)")
	assert.Contains(t, prompt, "User Input: what now?")
}
