package apiclient

import (
	"context"
	"fmt"

	"github.com/brisa-edu/brisa-client/internal/models"
)

// DefaultPeriodGrouping is the group_by used when none is given.
const DefaultPeriodGrouping = "year"

// EsquelaReportFilter narrows the esquela reports. From and To are
// YYYY-MM-DD dates; zero fields are omitted.
type EsquelaReportFilter struct {
	ProfesorID *int
	Tipo       models.NoteCodeType
	Limit      *int
	From       string
	To         string
}

// Esquelas defines the esquela operations, aggregates and reports
type Esquelas interface {
	ListEsquelas(ctx context.Context, params Values) ([]models.Esquela, error)
	GetEsquela(ctx context.Context, id int) (*models.Esquela, error)
	CreateEsquela(ctx context.Context, in *models.EsquelaCreate) (*models.Esquela, error)
	DeleteEsquela(ctx context.Context, id int) error
	AggregateByCourse(ctx context.Context, year *int) ([]models.EsquelaCourseAggregate, error)
	AggregateByPeriod(ctx context.Context, groupBy string) ([]models.EsquelaPeriodAggregate, error)
	StudentEsquelas(ctx context.Context, studentID int, params Values) ([]models.Esquela, error)
	Ranking(ctx context.Context, params Values) ([]models.RankingItem, error)
	ByProfessorReport(ctx context.Context, f *EsquelaReportFilter) (*models.EsquelasByProfessorReport, error)
	ByDateReport(ctx context.Context, f *EsquelaReportFilter) (*models.EsquelasByDateReport, error)
	FrequentCodesReport(ctx context.Context, f *EsquelaReportFilter) (*models.FrequentCodesReport, error)
}

type esquelaClient struct {
	client *BaseClient
}

func NewEsquelaClient(client *BaseClient) Esquelas {
	return &esquelaClient{client: client}
}

func (c *esquelaClient) ListEsquelas(ctx context.Context, params Values) ([]models.Esquela, error) {
	var out []models.Esquela
	if err := c.client.Get(ctx, "/esquelas/"+BuildQuery(params.Params()...), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *esquelaClient) GetEsquela(ctx context.Context, id int) (*models.Esquela, error) {
	var out models.Esquela
	if err := c.client.Get(ctx, fmt.Sprintf("/esquelas/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *esquelaClient) CreateEsquela(ctx context.Context, in *models.EsquelaCreate) (*models.Esquela, error) {
	var out models.Esquela
	if err := c.client.Post(ctx, "/esquelas/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *esquelaClient) DeleteEsquela(ctx context.Context, id int) error {
	return c.client.Delete(ctx, fmt.Sprintf("/esquelas/%d", id), nil)
}

func (c *esquelaClient) AggregateByCourse(ctx context.Context, year *int) ([]models.EsquelaCourseAggregate, error) {
	var out []models.EsquelaCourseAggregate
	if err := c.client.Get(ctx, "/esquelas/aggregate/by-course"+BuildQuery(P("year", year)), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *esquelaClient) AggregateByPeriod(ctx context.Context, groupBy string) ([]models.EsquelaPeriodAggregate, error) {
	if groupBy == "" {
		groupBy = DefaultPeriodGrouping
	}
	var out []models.EsquelaPeriodAggregate
	if err := c.client.Get(ctx, "/esquelas/aggregate/by-period"+BuildQuery(P("group_by", groupBy)), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *esquelaClient) StudentEsquelas(ctx context.Context, studentID int, params Values) ([]models.Esquela, error) {
	var out []models.Esquela
	path := fmt.Sprintf("/students/%d/esquelas", studentID) + BuildQuery(params.Params()...)
	if err := c.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *esquelaClient) Ranking(ctx context.Context, params Values) ([]models.RankingItem, error) {
	var out []models.RankingItem
	if err := c.client.Get(ctx, "/reports/ranking"+BuildQuery(params.Params()...), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *esquelaClient) ByProfessorReport(ctx context.Context, f *EsquelaReportFilter) (*models.EsquelasByProfessorReport, error) {
	var q []Param
	if f != nil {
		q = []Param{P("profesor_id", f.ProfesorID), P("from", f.From), P("to", f.To)}
	}
	var out models.EsquelasByProfessorReport
	if err := c.client.Get(ctx, "/reports/esquelas/by-professor"+BuildQuery(q...), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *esquelaClient) ByDateReport(ctx context.Context, f *EsquelaReportFilter) (*models.EsquelasByDateReport, error) {
	var q []Param
	if f != nil {
		q = []Param{P("from", f.From), P("to", f.To), P("tipo", f.Tipo)}
	}
	var out models.EsquelasByDateReport
	if err := c.client.Get(ctx, "/reports/esquelas/by-date"+BuildQuery(q...), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *esquelaClient) FrequentCodesReport(ctx context.Context, f *EsquelaReportFilter) (*models.FrequentCodesReport, error) {
	var q []Param
	if f != nil {
		q = []Param{P("tipo", f.Tipo), P("limit", f.Limit), P("from", f.From), P("to", f.To)}
	}
	var out models.FrequentCodesReport
	if err := c.client.Get(ctx, "/reports/esquelas/frequent-codes"+BuildQuery(q...), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
