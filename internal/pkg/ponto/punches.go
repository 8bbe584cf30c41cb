package ponto

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
)

// vendorDateLayout is the date format the vendor expects in queries.
const vendorDateLayout = "02/01/2006"

// flexString accepts a JSON string or number. Registration numbers come as either.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexInt accepts a JSON number or a numeric string; anything else leaves it unset.
type flexInt struct {
	Value int64
	Valid bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	n, err := strconv.ParseInt(string(s), 10, 64)
	*f = flexInt{Value: n, Valid: err == nil}
	return nil
}

type listPunchesRequest struct {
	Usuario     string `json:"usuario"`
	Senha       string `json:"senha"`
	DataInicio  string `json:"dataInicio"`
	DataFim     string `json:"dataFim"`
	Matricula   string `json:"matricula,omitempty"`
	NumeroSerie string `json:"numeroSerie,omitempty"`
}

// rawPunch is one vendor punch record as it arrives on the wire.
type rawPunch struct {
	Matricula   flexString `json:"Matricula"`
	Cpf         flexString `json:"Cpf"`
	DataHora    string     `json:"DataHora"`
	NumeroSerie flexString `json:"NumeroSerie"`
	Nsr         flexInt    `json:"Nsr"`
}

// toPunch normalizes a raw record. A timestamp that cannot be read yields a punch
// flagged Unparseable carrying the raw text.
func (r rawPunch) toPunch(c *Client) punch.Punch {
	p := punch.Punch{
		EmployeeID:   string(r.Matricula),
		PersonID:     string(r.Cpf),
		DeviceSerial: string(r.NumeroSerie),
	}
	if r.Nsr.Valid {
		nsr := r.Nsr.Value
		p.SequenceNumber = &nsr
	}
	ts, ok := punch.ParseVendorTimestamp(r.DataHora, c.loc)
	if !ok {
		p.Unparseable = true
		p.Raw = r.DataHora
		return p
	}
	p.Timestamp = ts
	return p
}

// FetchPunches implements timesheet.PunchSource.
func (c *Client) FetchPunches(ctx context.Context, q timesheet.PunchQuery) ([]punch.Punch, error) {
	req := listPunchesRequest{
		Usuario:    c.username,
		Senha:      c.password,
		DataInicio: q.Start.Format(vendorDateLayout),
		DataFim:    q.End.Format(vendorDateLayout),
	}
	if q.EmployeeID != nil {
		req.Matricula = *q.EmployeeID
	}
	if q.DeviceSerial != nil {
		req.NumeroSerie = *q.DeviceSerial
	}

	raw, err := call[[]rawPunch](ctx, c, opListPunches, req)
	if err != nil {
		return nil, err
	}

	punches := make([]punch.Punch, 0, len(raw))
	for _, r := range raw {
		punches = append(punches, r.toPunch(c))
	}
	return punches, nil
}

type listEmployeesRequest struct {
	Usuario    string   `json:"usuario"`
	Senha      string   `json:"senha"`
	Matriculas []string `json:"matriculas"`
}

type rawEmployee struct {
	Matricula flexString `json:"Matricula"`
	Nome      string     `json:"Nome"`
}

// ResolveNames implements timesheet.NameResolver with one batched vendor call.
func (c *Client) ResolveNames(ctx context.Context, employeeIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return names, nil
	}

	ids := append([]string(nil), employeeIDs...)
	sort.Strings(ids)

	raw, err := call[[]rawEmployee](ctx, c, opListEmployees, listEmployeesRequest{
		Usuario:    c.username,
		Senha:      c.password,
		Matriculas: ids,
	})
	if err != nil {
		return nil, err
	}

	for _, e := range raw {
		if name := strings.TrimSpace(e.Nome); name != "" && e.Matricula != "" {
			names[string(e.Matricula)] = name
		}
	}
	return names, nil
}
