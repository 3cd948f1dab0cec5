package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

const defaultPassword = "secret123"

func registerSetupSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^a user "([^"]*)" is registered$`, aUserIsRegistered)
	ctx.Step(`^I am logged in as "([^"]*)"$`, iAmLoggedInAs)
	ctx.Step(`^I am not logged in$`, iAmNotLoggedIn)
	ctx.Step(`^"([^"]*)" has an expense of "([^"]*)" in "([^"]*)" on "([^"]*)"$`, userHasAnExpense)
	ctx.Step(`^the clock is advanced by "([^"]*)"$`, theClockIsAdvancedBy)
}

func registerRequestSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the header is empty$`, theHeaderIsEmpty)
	ctx.Step(`^the header contains the key "([^"]*)" with "([^"]*)"$`, theHeaderContainsTheKeyWith)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
}

func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should not exist$`, theResponseFieldShouldNotExist)
	ctx.Step(`^the response field "([^"]*)" should be a list of (\d+) items?$`, theResponseFieldShouldBeAListOf)
	ctx.Step(`^the response should be a list of (\d+) items?$`, theResponseShouldBeAListOf)
	ctx.Step(`^the response should match json:$`, theResponseShouldMatchJSON)
}

func registerDatabaseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the db should contain (\d+) objects? in the "([^"]*)" table$`, theDbShouldContainObjectsInTheTable)
	ctx.Step(`^the db should contain (\d+) objects? in the "([^"]*)" table with the values:$`, theDbShouldContainObjectsInWithTheValues)
}

func scenario(ctx context.Context) (*TestContext, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return nil, errors.New("test context not initialized")
	}
	return tc, nil
}

func theAPIServerIsRunning(ctx context.Context) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if tc.server == nil {
		return errors.New("server not started")
	}
	return nil
}

// aUserIsRegistered signs a user up through the API with "<username>@example.com"
// and the default password, keeping its token for later logins.
func aUserIsRegistered(ctx context.Context, username string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}

	payload, _ := json.Marshal(map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": defaultPassword,
	})

	previous := tc.accessToken
	tc.accessToken = ""
	defer func() { tc.accessToken = previous }()

	if err := tc.executeRequest("POST", "/api/auth/register", payload); err != nil {
		return err
	}
	if tc.response.status != 201 {
		return fmt.Errorf("failed to register %q: status %d (body: %v)", username, tc.response.status, tc.response.body)
	}

	token, ok := getFieldValue(tc.response.body, "token").(string)
	if !ok {
		return fmt.Errorf("register response has no token: %v", tc.response.body)
	}
	id, err := uuid.Parse(fmt.Sprint(getFieldValue(tc.response.body, "user.id")))
	if err != nil {
		return fmt.Errorf("register response has no user id: %v", tc.response.body)
	}

	tc.tokens[username] = token
	tc.userIDs[username] = id
	return nil
}

func iAmLoggedInAs(ctx context.Context, username string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	token, ok := tc.tokens[username]
	if !ok {
		return fmt.Errorf("user %q is not registered", username)
	}
	tc.accessToken = token
	return nil
}

func iAmNotLoggedIn(ctx context.Context) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	tc.accessToken = ""
	return nil
}

func userHasAnExpense(ctx context.Context, username, amount, category, date string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	token, ok := tc.tokens[username]
	if !ok {
		return fmt.Errorf("user %q is not registered", username)
	}

	payload := fmt.Sprintf(`{"amount": %s, "description": "%s expense", "category": %q, "date": %q}`,
		amount, strings.ToLower(category), category, date)

	previous := tc.accessToken
	tc.accessToken = token
	defer func() { tc.accessToken = previous }()

	if err := tc.executeRequest("POST", "/api/expenses", []byte(payload)); err != nil {
		return err
	}
	if tc.response.status != 201 {
		return fmt.Errorf("failed to create expense: status %d (body: %v)", tc.response.status, tc.response.body)
	}
	return nil
}

func theClockIsAdvancedBy(ctx context.Context, duration string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	d, err := time.ParseDuration(duration)
	if err != nil {
		return err
	}
	tc.clock.Advance(d)
	return nil
}

func theHeaderIsEmpty(ctx context.Context) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	tc.headers = make(map[string]string)
	return nil
}

func theHeaderContainsTheKeyWith(ctx context.Context, key, value string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	tc.headers[key] = value
	return nil
}

func iSendARequestTo(ctx context.Context, method, path string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	return tc.executeRequest(method, tc.replacePlaceholders(path), nil)
}

func iSendARequestToWithBody(ctx context.Context, method, path string, body *godog.DocString) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	return tc.executeRequest(method, tc.replacePlaceholders(path), []byte(tc.replacePlaceholders(body.Content)))
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return errors.New("no response received")
	}
	if tc.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, tc.response.status, tc.response.body)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, field string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return errors.New("no response received")
	}

	body, ok := tc.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", tc.response.body)
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expectedValue string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(tc.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, tc.response.body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != tc.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return errors.New("no response received")
	}
	if getFieldValue(tc.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, tc.response.body)
	}
	return nil
}

func theResponseFieldShouldNotExist(ctx context.Context, field string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return errors.New("no response received")
	}
	if value := getFieldValue(tc.response.body, field); value != nil {
		return fmt.Errorf("field '%s' should not be in response, got %v", field, value)
	}
	return nil
}

func theResponseFieldShouldBeAListOf(ctx context.Context, field string, quantity int) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return errors.New("no response received")
	}
	list, ok := getFieldValue(tc.response.body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, tc.response.body)
	}
	if len(list) != quantity {
		return fmt.Errorf("expected %d items in '%s', got %d", quantity, field, len(list))
	}
	return nil
}

func theResponseShouldBeAListOf(ctx context.Context, quantity int) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return errors.New("no response received")
	}
	list, ok := tc.response.body.([]any)
	if !ok {
		return fmt.Errorf("response is not a JSON array: %v", tc.response.body)
	}
	if len(list) != quantity {
		return fmt.Errorf("expected %d items, got %d", quantity, len(list))
	}
	return nil
}

func theResponseShouldMatchJSON(ctx context.Context, body *godog.DocString) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return errors.New("no response received")
	}

	expected := tc.replacePlaceholders(body.Content)
	if !assert.JSONEq(noopT{}, expected, string(tc.response.raw)) {
		return fmt.Errorf("expected response %s, got %s", expected, tc.response.raw)
	}
	return nil
}

func theDbShouldContainObjectsInTheTable(ctx context.Context, quantity int, table string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	count, err := tc.countRows(table, nil)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func theDbShouldContainObjectsInWithTheValues(ctx context.Context, quantity int, table string, content *godog.DocString) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}

	var criteria map[string]any
	if err := json.Unmarshal([]byte(tc.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	count, err := tc.countRows(table, criteria)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (tc *TestContext) countRows(table string, criteria map[string]any) (int, error) {
	entity, ok := tc.db.GetModel(table)
	if !ok {
		return 0, fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := tc.db.DbConn
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return 0, result.Error
	}
	return entitySlicePtr.Elem().Len(), nil
}

// getFieldValue walks a decoded JSON value along a dot separated path; numeric
// segments index into lists.
func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var field = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i < 0 || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}

// noopT satisfies assert.TestingT so assertions can be reused as predicates.
type noopT struct{}

func (noopT) Errorf(string, ...any) {}
