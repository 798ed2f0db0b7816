// seed genera un script SQL para poblar las tablas base de la plataforma: dependencias,
// ubicaciones, categorías amplias y un usuario administrador inicial, a partir del
// export institucional Dependencias.csv (codificado en ISO-8859-1, separado por ';').
//
// Formato del CSV: dept_code;dept_name;parent_code;location_code;location_name
// (parent_code vacío = dependencia raíz; location_* vacíos = sin ubicación).
//
// Uso: go run ./cmd/seed [ruta/Dependencias.csv]
// Por defecto busca Dependencias.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/001_seed_base.sql
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type department struct {
	code, name, parentCode string
}

type location struct {
	code, name, deptCode string
}

// Categorías amplias por defecto, una por tracking type.
var broadCategories = []struct {
	code, name, tracking string
}{
	{"CAT-CONS", "Consumibles", "BULK"},
	{"CAT-PEREC", "Perecederos", "BATCH"},
	{"CAT-EQUIP", "Equipos", "INDIVIDUAL"},
}

func main() {
	csvPath := "Dependencias.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// El export institucional llega en ISO-8859-1
	scanner := bufio.NewScanner(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))

	deptMap := make(map[string]department)
	var locations []location
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || lineNo == 1 && strings.HasPrefix(line, "dept_code") {
			continue
		}
		parts := strings.Split(line, ";")
		if len(parts) < 3 {
			fmt.Fprintf(os.Stderr, "Línea %d ignorada: se esperaban al menos 3 columnas\n", lineNo)
			continue
		}
		d := department{
			code:       strings.TrimSpace(parts[0]),
			name:       strings.TrimSpace(parts[1]),
			parentCode: strings.TrimSpace(parts[2]),
		}
		if d.code == "" || d.name == "" {
			continue
		}
		deptMap[d.code] = d
		if len(parts) >= 5 && strings.TrimSpace(parts[3]) != "" {
			locations = append(locations, location{
				code:     strings.TrimSpace(parts[3]),
				name:     strings.TrimSpace(parts[4]),
				deptCode: d.code,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	// Ordenar por código para salida estable
	var deptCodes []string
	for c := range deptMap {
		deptCodes = append(deptCodes, c)
	}
	sort.Strings(deptCodes)

	// Hash bcrypt del password inicial del admin (cambiar tras el primer login)
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "cambiar-ahora"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hash de password: %v\n", err)
		os.Exit(1)
	}

	// Ruta del script de salida (relativa al módulo)
	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "001_seed_base.sql")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Dependencias, ubicaciones, categorías amplias y admin inicial\n")
	out.WriteString("-- Generado desde Dependencias.csv\n\n")

	// 1. Dependencias raíz primero, luego las hijas con subquery al padre
	out.WriteString("-- 1. Dependencias\n")
	for _, c := range deptCodes {
		d := deptMap[c]
		name := escapeSQL(d.name)
		if d.parentCode == "" {
			fmt.Fprintf(out, "INSERT INTO departments (id, parent_id, name, code, created_at, updated_at)\n")
			fmt.Fprintf(out, "VALUES (gen_random_uuid(), NULL, '%s', '%s', now(), now())\n", name, c)
		} else {
			fmt.Fprintf(out, "INSERT INTO departments (id, parent_id, name, code, created_at, updated_at)\n")
			fmt.Fprintf(out, "SELECT gen_random_uuid(), id, '%s', '%s', now(), now() FROM departments WHERE code = '%s'\n",
				name, c, d.parentCode)
		}
		out.WriteString("ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name;\n")
	}
	out.WriteString("\n")

	// 2. Ubicaciones con subquery a la dependencia
	out.WriteString("-- 2. Ubicaciones\n")
	for _, loc := range locations {
		name := escapeSQL(loc.name)
		fmt.Fprintf(out, "INSERT INTO locations (id, department_id, name, code, created_at, updated_at)\n")
		fmt.Fprintf(out, "SELECT gen_random_uuid(), id, '%s', '%s', now(), now() FROM departments WHERE code = '%s'\n",
			name, loc.code, loc.deptCode)
		out.WriteString("ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name;\n")
	}
	out.WriteString("\n")

	// 3. Categorías amplias (sin padre, con tracking type propio)
	out.WriteString("-- 3. Categorías amplias\n")
	for _, cat := range broadCategories {
		fmt.Fprintf(out, "INSERT INTO categories (id, parent_id, name, code, tracking_type, status, created_at, updated_at)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid(), NULL, '%s', '%s', '%s', 'active', now(), now())\n",
			escapeSQL(cat.name), cat.code, cat.tracking)
		out.WriteString("ON CONFLICT (code) DO NOTHING;\n")
	}
	out.WriteString("\n")

	// 4. Usuario administrador inicial, anclado a la primera dependencia raíz
	out.WriteString("-- 4. Admin inicial\n")
	out.WriteString("INSERT INTO users (id, department_id, email, password_hash, full_name, role, created_at, updated_at)\n")
	fmt.Fprintf(out, "SELECT gen_random_uuid(), id, 'admin@activos.local', '%s', 'Administrador', 'admin', now(), now()\n", string(hash))
	out.WriteString("FROM departments WHERE parent_id IS NULL ORDER BY code LIMIT 1\n")
	out.WriteString("ON CONFLICT (email) DO NOTHING;\n")

	fmt.Printf("Generado %s: %d dependencias, %d ubicaciones, %d categorías\n",
		outPath, len(deptCodes), len(locations), len(broadCategories))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
