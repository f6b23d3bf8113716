package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/caresync/backend/internal/infra/scheduler"
	"github.com/caresync/backend/test/integration/mock"
)

func (t *TestContext) registerDomainSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^today is "([^"]*)"$`, t.todayIs)
	ctx.Step(`^a registered user "([^"]*)" with password "([^"]*)"$`, t.aRegisteredUser)
	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, t.iLogInAs)
	ctx.Step(`^the user completed onboarding with cycle length (\d+), period duration (\d+) and last period "([^"]*)"$`, t.theUserCompletedOnboarding)
	ctx.Step(`^the user logged a period starting "([^"]*)"$`, t.theUserLoggedAPeriodStarting)
	ctx.Step(`^the user logged "([^"]*)" flow on "([^"]*)"$`, t.theUserLoggedFlowOn)
	ctx.Step(`^the reminder job runs$`, t.theReminderJobRuns)
	ctx.Step(`^the cleanup job runs$`, t.theCleanupJobRuns)
	ctx.Step(`^the email worker processes pending emails$`, t.theEmailWorkerProcessesPendingEmails)
	ctx.Step(`^the email provider rejects emails with status (\d+)$`, t.theEmailProviderRejectsEmails)
	ctx.Step(`^the email provider should have received (\d+) emails?$`, t.theEmailProviderShouldHaveReceived)
	ctx.Step(`^the last email should be addressed to "([^"]*)"$`, t.theLastEmailShouldBeAddressedTo)
	ctx.Step(`^the prediction cache should hold (\d+) entr(?:y|ies)$`, t.thePredictionCacheShouldHold)
	ctx.Step(`^the db should contain (\d+) objects? in the "([^"]*)" table$`, t.theDbShouldContainObjectsInTheTable)
	ctx.Step(`^the db should contain (\d+) objects? in the "([^"]*)" table with the values:$`, t.theDbShouldContainObjectsWithTheValues)
}

func (t *TestContext) todayIs(date string) error {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return err
	}
	t.clock.SetCurrentTime(day.Add(9 * time.Hour))
	return nil
}

func (t *TestContext) aRegisteredUser(email, password string) error {
	body, _ := json.Marshal(map[string]any{
		"email":          email,
		"name":           strings.Split(email, "@")[0],
		"password":       password,
		"terms_accepted": true,
	})
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/register", body); err != nil {
		return err
	}
	if err := t.theResponseStatusShouldBe(http.StatusCreated); err != nil {
		return err
	}
	return t.captureTokens()
}

func (t *TestContext) iLogInAs(email, password string) error {
	body, _ := json.Marshal(map[string]any{"email": email, "password": password})
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/login", body); err != nil {
		return err
	}
	if err := t.theResponseStatusShouldBe(http.StatusOK); err != nil {
		return err
	}
	return t.captureTokens()
}

func (t *TestContext) captureTokens() error {
	access, err := t.field("access_token")
	if err != nil {
		return err
	}
	refresh, err := t.field("refresh_token")
	if err != nil {
		return err
	}
	t.accessToken, _ = access.(string)
	t.refreshToken, _ = refresh.(string)
	if t.accessToken == "" {
		return errors.New("response carried no access token")
	}
	return nil
}

func (t *TestContext) theUserCompletedOnboarding(cycleLength, periodDuration int, lastPeriod string) error {
	body, _ := json.Marshal(map[string]any{
		"cycle_length":      cycleLength,
		"period_duration":   periodDuration,
		"last_period_start": lastPeriod,
	})
	if err := t.executeRequest(http.MethodPost, "/api/v1/onboarding", body); err != nil {
		return err
	}
	return t.theResponseStatusShouldBe(http.StatusOK)
}

func (t *TestContext) theUserLoggedAPeriodStarting(date string) error {
	body, _ := json.Marshal(map[string]any{"flow_intensity": "medium", "is_period_start": true})
	return t.saveLog(date, body)
}

func (t *TestContext) theUserLoggedFlowOn(flow, date string) error {
	body, _ := json.Marshal(map[string]any{"flow_intensity": flow})
	return t.saveLog(date, body)
}

func (t *TestContext) saveLog(date string, body []byte) error {
	if err := t.executeRequest(http.MethodPut, "/api/v1/logs/"+date, body); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated && t.response.status != http.StatusOK {
		return fmt.Errorf("saving log for %s returned %d: %s", date, t.response.status, t.response.raw)
	}
	return nil
}

func (t *TestContext) theReminderJobRuns() error {
	return t.injector.Scheduler.RunNow(context.Background(), scheduler.ReminderJobName)
}

func (t *TestContext) theCleanupJobRuns() error {
	return t.injector.Scheduler.RunNow(context.Background(), scheduler.CleanupJobName)
}

func (t *TestContext) theEmailWorkerProcessesPendingEmails() error {
	t.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (t *TestContext) theEmailProviderRejectsEmails(status int) error {
	t.provider.SetResponse(http.MethodPost, "/emails", status, map[string]any{
		"statusCode": status,
		"name":       "validation_error",
		"message":    "Invalid `to` field",
	})
	return nil
}

func (t *TestContext) theEmailProviderShouldHaveReceived(count int) error {
	received := t.provider.Requests(http.MethodPost, "/emails")
	if len(received) != count {
		return fmt.Errorf("expected %d emails at the provider, got %d", count, len(received))
	}
	return nil
}

func (t *TestContext) theLastEmailShouldBeAddressedTo(email string) error {
	received := t.provider.Requests(http.MethodPost, "/emails")
	if len(received) == 0 {
		return errors.New("the provider received no emails")
	}
	to, ok := received[len(received)-1].Body["to"].([]any)
	if !ok || len(to) == 0 {
		return fmt.Errorf("email has no recipients: %v", received[len(received)-1].Body)
	}
	if recipient := fmt.Sprintf("%v", to[0]); !strings.Contains(recipient, email) {
		return fmt.Errorf("expected recipient %s, got %s", email, recipient)
	}
	return nil
}

func (t *TestContext) thePredictionCacheShouldHold(count int) error {
	if keys := mock.RedisKeys(); len(keys) != count {
		return fmt.Errorf("expected %d cache entries, got %d (%v)", count, len(keys), keys)
	}
	return nil
}

func (t *TestContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *TestContext) theDbShouldContainObjectsWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *TestContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entitySlice := reflect.New(reflect.SliceOf(reflect.TypeOf(entity).Elem()))
	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}
	if err := query.Find(entitySlice.Interface()).Error; err != nil {
		return err
	}

	if count := entitySlice.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}
