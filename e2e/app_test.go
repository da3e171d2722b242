package e2e

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite provides a test suite for end-to-end tests
type E2ETestSuite struct {
	suite.Suite
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	expect  playwright.PlaywrightAssertions
}

// SetupSuite runs once before all tests
func (suite *E2ETestSuite) SetupSuite() {
	pw, err := playwright.Run()
	require.NoError(suite.T(), err, "could not launch playwright")
	suite.pw = pw

	browser, err := pw.Chromium.Launch()
	require.NoError(suite.T(), err, "could not launch chromium")
	suite.browser = browser

	suite.expect = playwright.NewPlaywrightAssertions()
}

// TearDownSuite runs once after all tests
func (suite *E2ETestSuite) TearDownSuite() {
	if suite.browser != nil {
		suite.browser.Close()
	}
	if suite.pw != nil {
		suite.pw.Stop()
	}
}

// SetupTest runs before each test
func (suite *E2ETestSuite) SetupTest() {
	page, err := suite.browser.NewPage()
	require.NoError(suite.T(), err, "could not create page")
	suite.page = page

	_, err = suite.page.Goto(appURL)
	require.NoError(suite.T(), err, "could not navigate to app")
}

// TearDownTest runs after each test
func (suite *E2ETestSuite) TearDownTest() {
	if suite.page != nil {
		suite.page.Close()
	}
}

func (suite *E2ETestSuite) login() {
	// Wait for login form
	err := suite.expect.Locator(suite.page.Locator(".login-form")).ToBeVisible()
	require.NoError(suite.T(), err, "login form not visible")

	// Fill in credentials
	err = suite.page.Locator("input[name=username]").Fill("testuser")
	require.NoError(suite.T(), err, "failed to fill username")

	err = suite.page.Locator("input[name=password]").Fill("testpass123")
	require.NoError(suite.T(), err, "failed to fill password")

	// Submit login
	err = suite.page.Locator(".login-btn").Click()
	require.NoError(suite.T(), err, "failed to click login")

	// Wait for redirect to expenses page
	err = suite.expect.Locator(suite.page.Locator(".list-screen")).ToBeVisible()
	require.NoError(suite.T(), err, "did not redirect to expenses page after login")
}

func (suite *E2ETestSuite) TestCompleteUserFlow() {
	// Login
	suite.login()

	// Verify Homepage
	err := suite.expect.Locator(suite.page.Locator(".summary small")).ToHaveText("Total spent")
	require.NoError(suite.T(), err, "homepage assertion failed")

	// Create a category first so the expense form has something to select
	_, err = suite.page.Goto(appURL + "/categories")
	require.NoError(suite.T(), err, "could not open categories page")

	err = suite.page.Locator(".category-form input[name=name]").Fill("Food")
	require.NoError(suite.T(), err, "failed to fill category name")

	err = suite.page.Locator(".category-form button[type=submit]").Click()
	require.NoError(suite.T(), err, "failed to submit category")

	err = suite.expect.Locator(suite.page.Locator(".category-item")).ToHaveCount(1)
	require.NoError(suite.T(), err, "category was not created")

	// Create Expense - Click add button from the list screen
	_, err = suite.page.Goto(appURL + "/expenses")
	require.NoError(suite.T(), err, "could not open expenses page")

	err = suite.page.Locator(".fab-add").Click()
	require.NoError(suite.T(), err, "failed to click add button")

	// Wait for form
	err = suite.expect.Locator(suite.page.Locator("#expense-form")).ToBeVisible()
	require.NoError(suite.T(), err, "expense form not visible")

	// Fill in the expense
	err = suite.page.Locator("input[name=amount]").Fill("12.50")
	require.NoError(suite.T(), err, "failed to fill amount")

	_, err = suite.page.Locator("select[name=category]").SelectOption(playwright.SelectOptionValues{
		Values: &[]string{"Food"},
	})
	require.NoError(suite.T(), err, "failed to select category")

	err = suite.page.Locator("input[name=description]").Fill("Lunch Test")
	require.NoError(suite.T(), err, "failed to fill description")

	// Submit
	err = suite.page.Locator("button.submit").Click()
	require.NoError(suite.T(), err, "failed to submit expense")

	// Verify in List - Wait for expense item to appear
	err = suite.expect.Locator(suite.page.Locator(".expense-item")).ToHaveCount(1)
	require.NoError(suite.T(), err, "expense item count mismatch")

	item := suite.page.Locator(".expense-item").First()
	err = suite.expect.Locator(item.Locator(".expense-details strong")).ToHaveText("Lunch Test")
	require.NoError(suite.T(), err, "description mismatch")

	err = suite.expect.Locator(item.Locator(".expense-amount")).ToContainText("12.50")
	require.NoError(suite.T(), err, "amount mismatch")

	err = suite.expect.Locator(suite.page.Locator(".summary h2")).ToHaveText("12.50")
	require.NoError(suite.T(), err, "total mismatch")

	// Delete the expense again
	err = item.Locator(".delete-btn").Click()
	require.NoError(suite.T(), err, "failed to delete expense")

	err = suite.expect.Locator(suite.page.Locator(".expense-item")).ToHaveCount(0)
	require.NoError(suite.T(), err, "expense was not deleted")

	err = suite.expect.Locator(suite.page.Locator(".empty")).ToBeVisible()
	require.NoError(suite.T(), err, "empty state not shown")
}

func (suite *E2ETestSuite) TestRegisterNewAccount() {
	_, err := suite.page.Goto(appURL + "/register")
	require.NoError(suite.T(), err, "could not open register page")

	err = suite.page.Locator("input[name=username]").Fill("newuser")
	require.NoError(suite.T(), err, "failed to fill username")

	err = suite.page.Locator("input[name=password]").Fill("newpass123")
	require.NoError(suite.T(), err, "failed to fill password")

	err = suite.page.Locator(".register-btn").Click()
	require.NoError(suite.T(), err, "failed to submit registration")

	// Registration drops the user on the login screen with a notice
	err = suite.expect.Locator(suite.page.Locator(".notice")).ToContainText("Account created")
	require.NoError(suite.T(), err, "registration notice not shown")

	// The fresh credentials work
	err = suite.page.Locator("input[name=username]").Fill("newuser")
	require.NoError(suite.T(), err, "failed to fill username")

	err = suite.page.Locator("input[name=password]").Fill("newpass123")
	require.NoError(suite.T(), err, "failed to fill password")

	err = suite.page.Locator(".login-btn").Click()
	require.NoError(suite.T(), err, "failed to log in")

	err = suite.expect.Locator(suite.page.Locator(".list-screen")).ToBeVisible()
	require.NoError(suite.T(), err, "did not reach expenses page after login")
}

// TestE2ESuite runs the e2e test suite
func TestE2ESuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
