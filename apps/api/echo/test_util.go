package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/tuitionlk/portal/core"
	"github.com/tuitionlk/portal/core/account"
	"github.com/tuitionlk/portal/core/content"
	"github.com/tuitionlk/portal/core/lecturer"
	"github.com/tuitionlk/portal/core/material"
	"github.com/tuitionlk/portal/core/request"
	"github.com/tuitionlk/portal/core/stats"
	dummydb "github.com/tuitionlk/portal/storage/database/dummy"
)

type echoMap = echo.Map

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type mailerMock struct {
	sent []*core.EmailMessage
}

func (m *mailerMock) SendMessages(messages ...*core.EmailMessage) {
	m.sent = append(m.sent, messages...)
}

// testApp bundles the server under test with its backing repositories so
// tests can seed data directly.
type testApp struct {
	server   Server
	acctRepo account.Repository
	lectRepo lecturer.Repository
	matRepo  material.Repository
	reqRepo  request.Repository
	contRepo content.Repository
	mailer   *mailerMock
}

func setupApp(t *testing.T) *testApp {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setupApp() failed: %v", err)
	}
	acctRepo := dummydb.NewAccountRepository(db)
	lectRepo := dummydb.NewLecturerRepository(db)
	matRepo := dummydb.NewMaterialRepository(db)
	reqRepo := dummydb.NewRequestRepository(db)
	contRepo := dummydb.NewContentRepository(db)
	mailer := &mailerMock{}

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	account.InitValidators(validate, translator)
	material.InitValidators(validate, translator)
	request.InitValidators(validate, translator)

	conf := core.NewConfig()
	conf.Debug = false
	conf.TestMode = true

	server := NewServer(ServerDeps{
		Conf:        conf,
		Logger:      nopLogger{},
		AccountSvc:  account.NewService(acctRepo, lectRepo, mailer, validate, conf),
		LecturerSvc: lecturer.NewService(lectRepo, validate),
		MaterialSvc: material.NewService(matRepo, validate),
		RequestSvc:  request.NewService(reqRepo, acctRepo, validate, nopLogger{}),
		ContentSvc:  content.NewService(contRepo, validate),
		StatsSvc:    stats.NewService(dummydb.NewStatsRepository(db)),
		Validate:    validate,
		Translator:  translator,
	})

	return &testApp{
		server:   server,
		acctRepo: acctRepo,
		lectRepo: lectRepo,
		matRepo:  matRepo,
		reqRepo:  reqRepo,
		contRepo: contRepo,
		mailer:   mailer,
	}
}

func (app *testApp) do(method, path string, data ...[]byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) createStudent(t *testing.T, name, email, pwd string, approved bool, courses, lecturers []string) account.Account {
	now := time.Now().UTC()
	acct := account.Account{
		Name:              name,
		Email:             email,
		Role:              account.RoleStudent,
		IsApproved:        approved,
		PermittedCourses:  courses,
		AssignedLecturers: lecturers,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if pwd != "" {
		if err := acct.SetPassword(pwd); err != nil {
			t.Fatalf("createStudent() failed: %v", err)
		}
	}
	acct, err := app.acctRepo.CreateAccount(context.Background(), acct)
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return acct
}

func (app *testApp) createMaterial(t *testing.T, title, course, lecturerID string, createdAt time.Time) material.Material {
	mat := material.Material{
		Title:      title,
		Kind:       material.KindRecording,
		VideoURL:   "https://videos.test/" + title,
		CourseName: course,
		LecturerID: lecturerID,
		CreatedAt:  createdAt,
	}
	mat, err := app.matRepo.CreateMaterial(context.Background(), mat)
	if err != nil {
		t.Fatalf("createMaterial() failed: %v", err)
	}
	return mat
}

func ctxBg() context.Context {
	return context.Background()
}

func marshal(t *testing.T, v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) bool {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		t.Fatalf("jsonBytesEqual() failed: %v", err)
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		t.Fatalf("jsonBytesEqual() failed: %v", err)
	}
	return assert.ObjectsAreEqual(j1, j2)
}

func checkCode(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("got status %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}
