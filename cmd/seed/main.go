// seed carga la cuadrilla inicial (grupos y empleados) desde un CSV exportado de la planilla
// de la oficina. Acepta UTF-8 o ISO-8859-1 (export de Excel en Windows).
//
// Uso: go run ./cmd/seed [-latin1] ruta/empleados.csv
// Columnas: nombre;grupo (grupo opcional). La primera fila es encabezado.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/application/usecase"
	"github.com/jhoicas/Cuadrilla-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Cuadrilla-api/pkg/config"
	"github.com/jhoicas/Cuadrilla-api/pkg/logger"
)

type row struct {
	name  string
	group string
}

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed [-latin1] empleados.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	rows, err := parseRows(f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	repos := postgres.NewStore(pool)
	uc := usecase.NewEmployeeUseCase(repos.Employees, repos.Groups)

	groups, err := existingGroups(ctx, uc)
	if err != nil {
		log.Fatal().Err(err).Msg("listar grupos")
	}
	created := 0
	for _, r := range rows {
		var groupID *string
		if r.group != "" {
			key := strings.ToLower(r.group)
			id, ok := groups[key]
			if !ok {
				g, err := uc.CreateGroup(ctx, dto.CreateGroupRequest{Name: r.group})
				if err != nil {
					log.Fatal().Err(err).Str("grupo", r.group).Msg("crear grupo")
				}
				id = g.ID
				groups[key] = id
			}
			groupID = &id
		}
		if _, err := uc.Create(ctx, dto.CreateEmployeeRequest{Name: r.name, GroupID: groupID}); err != nil {
			log.Fatal().Err(err).Str("empleado", r.name).Msg("crear empleado")
		}
		created++
	}
	log.Info().Int("empleados", created).Int("grupos", len(groups)).Msg("seed completo")
}

func existingGroups(ctx context.Context, uc *usecase.EmployeeUseCase) (map[string]string, error) {
	list, err := uc.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(list))
	for _, g := range list {
		out[strings.ToLower(g.Name)] = g.ID
	}
	return out, nil
}

// parseRows lee nombre;grupo salteando el encabezado y las filas sin nombre.
func parseRows(r io.Reader, latin1 bool) ([]row, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	var out []row
	for i, rec := range records {
		if i == 0 || len(rec) == 0 {
			continue
		}
		name := strings.TrimSpace(rec[0])
		if name == "" {
			continue
		}
		var group string
		if len(rec) > 1 {
			group = strings.TrimSpace(rec[1])
		}
		out = append(out, row{name: name, group: group})
	}
	return out, nil
}
