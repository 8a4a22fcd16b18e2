package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/irispredictor/internal/client/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	token string

	loginErr   error
	predictErr error
	listErr    error

	gotUser, gotPass    string
	gotFeatures         [4]float64
	gotLimit, gotOffset int
	class               int
	items               []api.Prediction
}

func (f *fakeAPI) LoggedIn() bool { return f.token != "" }
func (f *fakeAPI) Logout()        { f.token = "" }
func (f *fakeAPI) Login(ctx context.Context, u, p string) error {
	f.gotUser, f.gotPass = u, p
	if f.loginErr != nil {
		return f.loginErr
	}
	f.token = "tok"
	return nil
}
func (f *fakeAPI) Predict(ctx context.Context, a, b, c, d float64) (int, error) {
	f.gotFeatures = [4]float64{a, b, c, d}
	return f.class, f.predictErr
}
func (f *fakeAPI) List(ctx context.Context, limit, offset int) ([]api.Prediction, error) {
	f.gotLimit, f.gotOffset = limit, offset
	return f.items, f.listErr
}

func newTestApp(input string, f *fakeAPI) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{api: f, reader: bufio.NewReader(strings.NewReader(input)), out: out}, out
}

func stubPassword(t *testing.T, pw string, err error) {
	t.Helper()
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), err }
	t.Cleanup(func() { readPassword = orig })
}

func TestLogin(t *testing.T) {
	stubPassword(t, "secret", nil)
	f := &fakeAPI{}
	a, out := newTestApp("admin\n", f)

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, "admin", f.gotUser)
	assert.Equal(t, "secret", f.gotPass)
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Login successful")
}

func TestLogin_Failure(t *testing.T) {
	stubPassword(t, "nope", nil)
	f := &fakeAPI{loginErr: api.ErrUnauthorized}
	a, out := newTestApp("admin\n", f)

	assert.Error(t, a.Login(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "error:")
}

func TestLogin_PasswordReadError(t *testing.T) {
	stubPassword(t, "", errors.New("no tty"))
	f := &fakeAPI{}
	a, _ := newTestApp("admin\n", f)

	assert.Error(t, a.Login(context.Background()))
	assert.Empty(t, f.gotUser)
}

func TestPredict(t *testing.T) {
	f := &fakeAPI{token: "tok", class: 2}
	a, out := newTestApp("", f)

	require.NoError(t, a.Predict(context.Background(), []string{"6.7", "3.0", "5.2", "2.3"}))
	assert.Equal(t, [4]float64{6.7, 3.0, 5.2, 2.3}, f.gotFeatures)
	assert.Contains(t, out.String(), "Predicted class: 2 (virginica)")
}

func TestPredict_BadArgs(t *testing.T) {
	f := &fakeAPI{token: "tok"}
	a, _ := newTestApp("", f)

	assert.Error(t, a.Predict(context.Background(), []string{"1", "2"}))
	assert.Error(t, a.Predict(context.Background(), []string{"1", "2", "x", "4"}))
}

func TestPredict_UnauthorizedDropsSession(t *testing.T) {
	f := &fakeAPI{token: "tok", predictErr: fmt.Errorf("%w: expired", api.ErrUnauthorized)}
	a, _ := newTestApp("", f)

	assert.Error(t, a.Predict(context.Background(), []string{"1", "2", "3", "4"}))
	assert.False(t, a.isLoggedIn())
}

func TestList(t *testing.T) {
	class := 0
	f := &fakeAPI{token: "tok", items: []api.Prediction{
		{ID: 3, SepalLength: 5.1, SepalWidth: 3.5, PetalLength: 1.4, PetalWidth: 0.2, PredictedClass: &class, CreatedAt: time.Now()},
		{ID: 2, SepalLength: 4.9},
	}}
	a, out := newTestApp("", f)

	require.NoError(t, a.List(context.Background(), nil))
	assert.Equal(t, 10, f.gotLimit)
	assert.Equal(t, 0, f.gotOffset)
	assert.Contains(t, out.String(), "setosa")
	assert.Contains(t, out.String(), "ID")

	require.NoError(t, a.List(context.Background(), []string{"5", "20"}))
	assert.Equal(t, 5, f.gotLimit)
	assert.Equal(t, 20, f.gotOffset)

	assert.Error(t, a.List(context.Background(), []string{"x"}))
	assert.Error(t, a.List(context.Background(), []string{"1", "y"}))
	assert.Error(t, a.List(context.Background(), []string{"1", "2", "3"}))
}

func TestList_Empty(t *testing.T) {
	f := &fakeAPI{token: "tok"}
	a, out := newTestApp("", f)

	require.NoError(t, a.List(context.Background(), nil))
	assert.Contains(t, out.String(), "No predictions")
}

func TestGetSimpleText(t *testing.T) {
	var w bytes.Buffer
	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("  hello \n")), "Prompt", &w)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Equal(t, "Prompt\n> ", w.String())

	got, err = GetSimpleText(bufio.NewReader(strings.NewReader("partial")), "P", &w)
	require.NoError(t, err)
	assert.Equal(t, "partial", got)

	_, err = GetSimpleText(bufio.NewReader(strings.NewReader("")), "P", &w)
	assert.Error(t, err)
}
