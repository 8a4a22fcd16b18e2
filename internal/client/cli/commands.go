package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/irispredictor/internal/client/api"
	"github.com/dmitrijs2005/irispredictor/internal/common"
)

var classNames = map[int]string{0: "setosa", 1: "versicolor", 2: "virginica"}

func className(c int) string {
	if n, ok := classNames[c]; ok {
		return n
	}
	return strconv.Itoa(c)
}

func (a *App) Login(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return a.fail(err)
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return a.fail(err)
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, userName, string(password)); err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Predict expects four numbers: sepal length, sepal width, petal length,
// petal width.
func (a *App) Predict(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return a.fail(errors.New("usage: predict <sepal_length> <sepal_width> <petal_length> <petal_width>"))
	}
	var v [4]float64
	for i, s := range args {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return a.fail(fmt.Errorf("%q is not a number", s))
		}
		v[i] = f
	}

	class, err := a.api.Predict(ctx, v[0], v[1], v[2], v[3])
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Predicted class: %d (%s)\n", class, className(class))
	return nil
}

// List accepts optional limit and offset.
func (a *App) List(ctx context.Context, args []string) error {
	limit, offset := common.DefaultListLimit, common.DefaultListOffset
	if len(args) > 2 {
		return a.fail(errors.New("usage: list [limit] [offset]"))
	}
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return a.fail(fmt.Errorf("limit %q is not an integer", args[0]))
		}
		limit = n
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return a.fail(fmt.Errorf("offset %q is not an integer", args[1]))
		}
		offset = n
	}

	items, err := a.api.List(ctx, limit, offset)
	if err != nil {
		return a.fail(err)
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No predictions")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSEPAL L\tSEPAL W\tPETAL L\tPETAL W\tCLASS\tCREATED")
	for _, p := range items {
		fmt.Fprintf(tw, "%d\t%g\t%g\t%g\t%g\t%s\t%s\n",
			p.ID, p.SepalLength, p.SepalWidth, p.PetalLength, p.PetalWidth,
			classCell(p), p.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}

func classCell(p api.Prediction) string {
	if p.PredictedClass == nil {
		return "-"
	}
	return className(*p.PredictedClass)
}

// fail reports err to the user and returns it. An expired or rejected token
// drops the local session.
func (a *App) fail(err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		a.api.Logout()
	}
	fmt.Fprintf(a.out, "error: %v\n", err)
	return err
}
