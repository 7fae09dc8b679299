package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrInvalidPLY marks malformed or unsupported PLY input
var ErrInvalidPLY = errors.New("invalid PLY data")

// Mesh is a polygon mesh: vertex positions and faces that index them
type Mesh struct {
	Vertices []core.Vec3
	Faces    [][]int
}

// plyProperty represents a property definition in the PLY header
type plyProperty struct {
	name      string
	dataType  string
	isList    bool
	countType string // For list properties, the type of the count
}

type plyElement struct {
	name       string
	count      int
	properties []plyProperty
}

type plyHeader struct {
	format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	elements []plyElement
}

// LoadPLY loads a PLY file into a mesh
func LoadPLY(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	mesh, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return mesh, nil
}

// ReadPLY parses ASCII or binary PLY data. Only vertex positions and face
// vertex lists are kept; other elements and properties are skipped.
func ReadPLY(r io.Reader) (*Mesh, error) {
	br := bufio.NewReader(r)
	header, err := parsePLYHeader(br)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values valueReader
	switch header.format {
	case "ascii":
		scanner := bufio.NewScanner(br)
		scanner.Split(bufio.ScanWords)
		values = &asciiReader{scanner: scanner}
	case "binary_little_endian":
		values = &binaryReader{r: br, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryReader{r: br, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format %q: %w", header.format, ErrInvalidPLY)
	}

	mesh := &Mesh{}
	for _, element := range header.elements {
		for i := 0; i < element.count; i++ {
			if err := readElement(values, element, mesh); err != nil {
				return nil, fmt.Errorf("%s %d: %w", element.name, i, err)
			}
		}
	}

	for i, face := range mesh.Faces {
		for _, index := range face {
			if index < 0 || index >= len(mesh.Vertices) {
				return nil, fmt.Errorf("face %d references vertex %d of %d: %w", i, index, len(mesh.Vertices), ErrInvalidPLY)
			}
		}
	}
	return mesh, nil
}

// parsePLYHeader reads up to and including the end_header line
func parsePLYHeader(r *bufio.Reader) (*plyHeader, error) {
	header := &plyHeader{}

	magic, err := r.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("missing ply magic: %w", ErrInvalidPLY)
	}

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("header ended before end_header: %w", ErrInvalidPLY)
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.format == "" {
				return nil, fmt.Errorf("missing format line: %w", ErrInvalidPLY)
			}
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line %q: %w", strings.TrimSpace(line), ErrInvalidPLY)
			}
			header.format = parts[1]
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line %q: %w", strings.TrimSpace(line), ErrInvalidPLY)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count %q: %w", parts[2], ErrInvalidPLY)
			}
			header.elements = append(header.elements, plyElement{name: parts[1], count: count})
		case "property":
			if len(header.elements) == 0 {
				return nil, fmt.Errorf("property before any element: %w", ErrInvalidPLY)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			current := &header.elements[len(header.elements)-1]
			current.properties = append(current.properties, prop)
		default:
			return nil, fmt.Errorf("unknown header keyword %q: %w", parts[0], ErrInvalidPLY)
		}
	}
}

// parsePLYProperty parses the fields after "property"
func parsePLYProperty(parts []string) (plyProperty, error) {
	if len(parts) >= 4 && parts[0] == "list" {
		return plyProperty{name: parts[3], dataType: parts[2], isList: true, countType: parts[1]}, nil
	}
	if len(parts) == 2 && parts[0] != "list" {
		return plyProperty{name: parts[1], dataType: parts[0]}, nil
	}
	return plyProperty{}, fmt.Errorf("invalid property definition %v: %w", parts, ErrInvalidPLY)
}

// readElement reads one element instance and appends what it describes
func readElement(values valueReader, element plyElement, mesh *Mesh) error {
	var position [3]float64
	var face []int

	for _, prop := range element.properties {
		if !prop.isList {
			value, err := values.read(prop.dataType)
			if err != nil {
				return fmt.Errorf("property %s: %w", prop.name, err)
			}
			if element.name == "vertex" {
				switch prop.name {
				case "x":
					position[0] = value
				case "y":
					position[1] = value
				case "z":
					position[2] = value
				}
			}
			continue
		}

		count, err := values.read(prop.countType)
		if err != nil {
			return fmt.Errorf("list %s count: %w", prop.name, err)
		}
		if count < 0 || count != math.Trunc(count) {
			return fmt.Errorf("list %s count %g: %w", prop.name, count, ErrInvalidPLY)
		}

		isFace := element.name == "face" && (prop.name == "vertex_indices" || prop.name == "vertex_index")
		for j := 0; j < int(count); j++ {
			value, err := values.read(prop.dataType)
			if err != nil {
				return fmt.Errorf("list %s item %d: %w", prop.name, j, err)
			}
			if isFace {
				face = append(face, int(value))
			}
		}
	}

	switch element.name {
	case "vertex":
		mesh.Vertices = append(mesh.Vertices, core.NewVec3(position[0], position[1], position[2]))
	case "face":
		if len(face) < 3 {
			return fmt.Errorf("face with %d vertices: %w", len(face), ErrInvalidPLY)
		}
		mesh.Faces = append(mesh.Faces, face)
	}
	return nil
}

// valueReader reads one scalar of a PLY data type
type valueReader interface {
	read(dataType string) (float64, error)
}

type asciiReader struct {
	scanner *bufio.Scanner
}

func (a *asciiReader) read(dataType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	token := a.scanner.Text()
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", dataType, token, ErrInvalidPLY)
	}
	return value, nil
}

type binaryReader struct {
	r     io.Reader
	order binary.ByteOrder
}

func (b *binaryReader) read(dataType string) (float64, error) {
	switch dataType {
	case "float", "float32":
		var v float32
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	case "double", "float64":
		var v float64
		err := binary.Read(b.r, b.order, &v)
		return v, err
	case "int", "int32":
		var v int32
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	case "uint", "uint32":
		var v uint32
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	case "short", "int16":
		var v int16
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	case "ushort", "uint16":
		var v uint16
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	case "char", "int8":
		var v int8
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	case "uchar", "uint8":
		var v uint8
		err := binary.Read(b.r, b.order, &v)
		return float64(v), err
	default:
		return 0, fmt.Errorf("unsupported data type %q: %w", dataType, ErrInvalidPLY)
	}
}

// Transformed returns a copy of the mesh scaled about the origin and then
// moved by offset
func (m *Mesh) Transformed(scale float64, offset core.Vec3) *Mesh {
	vertices := make([]core.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		vertices[i] = v.Multiply(scale).Add(offset)
	}
	return &Mesh{Vertices: vertices, Faces: m.Faces}
}

// Geometries turns every face into a polygon sharing emission and material.
// Degenerate or non-convex faces are skipped and counted.
func (m *Mesh) Geometries(emission core.Vec3, mat material.Material) (*geometry.Geometries, int) {
	aggregate := geometry.NewGeometries()
	skipped := 0

	for _, face := range m.Faces {
		vertices := make([]core.Vec3, len(face))
		for i, index := range face {
			vertices[i] = m.Vertices[index]
		}
		polygon, err := geometry.NewPolygon(vertices...)
		if err != nil {
			skipped++
			continue
		}
		aggregate.Add(geometry.NewGeometry(polygon, emission, mat))
	}
	return aggregate, skipped
}
