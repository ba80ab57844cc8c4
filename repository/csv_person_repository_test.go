package repository

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"github.com/camden-git/personsbackend/apperrors"
	"github.com/camden-git/personsbackend/models"
)

type CSVPersonRepositorySuite struct {
	suite.Suite
	dir string
}

func TestCSVPersonRepositorySuite(t *testing.T) {
	suite.Run(t, new(CSVPersonRepositorySuite))
}

func (s *CSVPersonRepositorySuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *CSVPersonRepositorySuite) writeCSV(content string) string {
	path := filepath.Join(s.dir, "persons.csv")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (s *CSVPersonRepositorySuite) newRepo(lines ...string) *CSVPersonRepository {
	return NewCSVPersonRepository(s.writeCSV(strings.Join(lines, "\n")), LineParser{})
}

func ids(people []models.Person) []int {
	out := make([]int, 0, len(people))
	for _, p := range people {
		out = append(out, p.ID)
	}
	return out
}

func (s *CSVPersonRepositorySuite) TestList() {
	s.Run("assigns line numbers as ids", func() {
		repo := s.newRepo(
			"Müller, Hans, 67742 Lauterecken, 1",
			"Petersen, Peter, 18439 Stralsund, 2",
			"Johnson, Johnny, 88888 made up, 3",
		)
		people, err := repo.List(context.Background())
		s.Require().NoError(err)
		s.Equal([]int{1, 2, 3}, ids(people))
	})

	s.Run("keeps gaps for skipped rows", func() {
		repo := s.newRepo(
			"Müller, Hans, 67742 Lauterecken, 1",
			" , , 12313 Wasweißich, 1",
			"Petersen, Peter, 18439 Stralsund, 2",
		)
		people, err := repo.List(context.Background())
		s.Require().NoError(err)
		s.Equal([]int{1, 3}, ids(people))
		s.Equal("Müller", models.Deref(people[0].LastName))
		s.Equal("Petersen", models.Deref(people[1].LastName))
	})

	s.Run("keeps gaps for empty lines", func() {
		repo := s.newRepo(
			"Müller, Hans, 67742 Lauterecken, 1",
			"",
			"Petersen, Peter, 18439 Stralsund, 2",
		)
		people, err := repo.List(context.Background())
		s.Require().NoError(err)
		s.Equal([]int{1, 3}, ids(people))
	})

	s.Run("accepts windows line endings", func() {
		path := s.writeCSV("Müller, Hans, 67742 Lauterecken, 1\r\nPetersen, Peter, 18439 Stralsund, 2\r\n")
		people, err := NewCSVPersonRepository(path, LineParser{}).List(context.Background())
		s.Require().NoError(err)
		s.Equal([]int{1, 2}, ids(people))
		s.Equal("Lauterecken", models.Deref(models.NewPersonResponse(people[0]).City))
	})

	s.Run("skips oversized lines and keeps counting", func() {
		repo := s.newRepo(
			"Müller, Hans, 67742 Lauterecken, 1",
			"Lang, "+strings.Repeat("x", maxLineSize)+", 1",
			"Petersen, Peter, 18439 Stralsund, 2",
		)
		people, err := repo.List(context.Background())
		s.Require().NoError(err)
		s.Equal([]int{1, 3}, ids(people))

		added, err := repo.Add(context.Background(), models.Person{LastName: models.StringPtr("Neu")})
		s.Require().NoError(err)
		s.Equal(4, added.ID)
	})

	s.Run("returns an empty non-nil list for an empty file", func() {
		people, err := s.newRepo().List(context.Background())
		s.Require().NoError(err)
		s.NotNil(people)
		s.Empty(people)
	})
}

func (s *CSVPersonRepositorySuite) TestGetByID() {
	repo := s.newRepo(
		"Müller, Hans, 67742 Lauterecken, 1",
		"Petersen, Peter, 18439 Stralsund, 2",
		"Johnson, Johnny, 88888 made up, 3",
	)

	s.Run("returns the person on that line", func() {
		p, found, err := repo.GetByID(context.Background(), 2)
		s.Require().NoError(err)
		s.Require().True(found)
		s.Equal(2, p.ID)
		s.Equal("Petersen", models.Deref(p.LastName))
		s.Equal("Peter", models.Deref(p.FirstName))
	})

	s.Run("reports absence without an error", func() {
		_, found, err := repo.GetByID(context.Background(), 999)
		s.Require().NoError(err)
		s.False(found)
	})
}

func (s *CSVPersonRepositorySuite) TestListByColor() {
	repo := s.newRepo(
		"Müller, Hans, 67742 Lauterecken, 1",
		"Petersen, Peter, 18439 Stralsund, 2",
		"Johnson, Johnny, 88888 made up, 1",
		"Bart, Bertram,",
	)

	people, err := repo.ListByColor(context.Background(), models.ColorBlue)
	s.Require().NoError(err)
	s.Equal([]int{1, 3}, ids(people))

	people, err = repo.ListByColor(context.Background(), models.ColorWhite)
	s.Require().NoError(err)
	s.NotNil(people)
	s.Empty(people)
}

func (s *CSVPersonRepositorySuite) TestMissingFile() {
	repo := NewCSVPersonRepository(filepath.Join(s.dir, "missing.csv"), LineParser{})

	_, err := repo.List(context.Background())
	var accessErr *apperrors.StorageAccessError
	s.Require().ErrorAs(err, &accessErr)
	s.Equal(apperrors.OpAccess, accessErr.Operation)
	s.Equal(repo.Path(), accessErr.Path)

	_, _, err = repo.GetByID(context.Background(), 1)
	s.Require().ErrorAs(err, &accessErr)

	_, err = repo.Add(context.Background(), models.Person{LastName: models.StringPtr("Neu")})
	s.Require().ErrorAs(err, &accessErr)
	s.Equal(apperrors.OpAccess, accessErr.Operation)
}

func (s *CSVPersonRepositorySuite) TestCancelledScan() {
	repo := s.newRepo("Müller, Hans, 67742 Lauterecken, 1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	people, err := repo.List(ctx)
	s.Require().ErrorIs(err, context.Canceled)
	s.Nil(people)
}

func (s *CSVPersonRepositorySuite) TestAdd() {
	s.Run("appends and assigns the next line number", func() {
		repo := s.newRepo(
			"Müller, Hans, 67742 Lauterecken, 1",
			"",
			"Petersen, Peter, 18439 Stralsund, 2",
		)
		added, err := repo.Add(context.Background(), models.Person{
			LastName:  models.StringPtr("Neu"),
			FirstName: models.StringPtr("Nina"),
			Address:   models.StringPtr("10115 Berlin"),
			Color:     models.IntPtr(models.ColorGreen),
		})
		s.Require().NoError(err)
		s.Equal(4, added.ID)

		got, found, err := repo.GetByID(context.Background(), 4)
		s.Require().NoError(err)
		s.Require().True(found)
		s.Equal(added, got)

		raw, err := os.ReadFile(repo.Path())
		s.Require().NoError(err)
		s.True(strings.HasSuffix(string(raw), "\nNeu, Nina, 10115 Berlin, 2\n"))
	})

	s.Run("starts a new line when the file lacks a terminator", func() {
		repo := s.newRepo("Müller, Hans, 67742 Lauterecken, 1")
		added, err := repo.Add(context.Background(), models.Person{FirstName: models.StringPtr("Solo")})
		s.Require().NoError(err)
		s.Equal(2, added.ID)

		people, err := repo.List(context.Background())
		s.Require().NoError(err)
		s.Equal([]int{1, 2}, ids(people))
		s.Nil(people[1].LastName)
		s.Nil(people[1].Address)
		s.Nil(people[1].Color)
	})

	s.Run("keeps windows line endings", func() {
		path := s.writeCSV("Müller, Hans, 67742 Lauterecken, 1\r\n")
		repo := NewCSVPersonRepository(path, LineParser{})
		added, err := repo.Add(context.Background(), models.Person{LastName: models.StringPtr("Neu")})
		s.Require().NoError(err)
		s.Equal(2, added.ID)

		raw, err := os.ReadFile(path)
		s.Require().NoError(err)
		s.Equal("Müller, Hans, 67742 Lauterecken, 1\r\nNeu, , \r\n", string(raw))
	})

	s.Run("first record in an empty file gets id 1", func() {
		repo := s.newRepo()
		added, err := repo.Add(context.Background(), models.Person{LastName: models.StringPtr("Erst")})
		s.Require().NoError(err)
		s.Equal(1, added.ID)
	})

	s.Run("rejects values that would break the line format", func() {
		repo := s.newRepo("Müller, Hans, 67742 Lauterecken, 1")
		_, err := repo.Add(context.Background(), models.Person{
			LastName: models.StringPtr("Doe, John"),
			Address:  models.StringPtr("1\n2"),
		})
		var invalid *apperrors.InvalidPersonDataError
		s.Require().ErrorAs(err, &invalid)
		s.Len(invalid.Errors, 2)
	})

	s.Run("rejects records without a name", func() {
		repo := s.newRepo("Müller, Hans, 67742 Lauterecken, 1")
		_, err := repo.Add(context.Background(), models.Person{Address: models.StringPtr("10115 Berlin")})
		var invalid *apperrors.InvalidPersonDataError
		s.Require().ErrorAs(err, &invalid)
	})
}

// TestConcurrentAddAssignsUniqueIDs drives two repository instances on the
// same file from many goroutines.
func (s *CSVPersonRepositorySuite) TestConcurrentAddAssignsUniqueIDs() {
	path := s.writeCSV("Müller, Hans, 67742 Lauterecken, 1\n")
	repos := []*CSVPersonRepository{
		NewCSVPersonRepository(path, LineParser{}),
		NewCSVPersonRepository(path, LineParser{}),
	}
	const writers = 40

	var (
		mu       sync.Mutex
		assigned []int
	)
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < writers; i++ {
		repo := repos[i%len(repos)]
		g.Go(func() error {
			added, err := repo.Add(ctx, models.Person{LastName: models.StringPtr("Parallel")})
			if err != nil {
				return err
			}
			mu.Lock()
			assigned = append(assigned, added.ID)
			mu.Unlock()
			return nil
		})
	}
	s.Require().NoError(g.Wait())

	sort.Ints(assigned)
	want := make([]int, 0, writers)
	for id := 2; id <= writers+1; id++ {
		want = append(want, id)
	}
	s.Equal(want, assigned)

	people, err := repos[0].List(context.Background())
	s.Require().NoError(err)
	s.Len(people, writers+1)
}

func TestReadLine(t *testing.T) {
	long := strings.Repeat("y", maxLineSize+1)
	rd := bufio.NewReaderSize(strings.NewReader("a\r\n"+long+"\nlast"), 4096)

	want := []struct {
		line      string
		oversized bool
	}{
		{"a", false},
		{"", true},
		{"last", false},
	}
	for i, w := range want {
		line, oversized, err := readLine(rd)
		if err != nil {
			t.Fatalf("line %d: unexpected error %v", i+1, err)
		}
		if line != w.line || oversized != w.oversized {
			t.Errorf("line %d = (%q, %v), want (%q, %v)", i+1, line, oversized, w.line, w.oversized)
		}
	}
	if _, _, err := readLine(rd); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF after the last line, got %v", err)
	}
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		content    string
		lines      int
		terminated bool
		crlf       bool
	}{
		{"", 0, true, false},
		{"a", 1, false, false},
		{"a\n", 1, true, false},
		{"a\nb", 2, false, false},
		{"a\n\n", 2, true, false},
		{"a\r\nb\r\n", 2, true, true},
	}
	for _, tt := range tests {
		stats, err := countLines(strings.NewReader(tt.content))
		if err != nil {
			t.Fatalf("countLines(%q): %v", tt.content, err)
		}
		if stats.lines != tt.lines || stats.terminated != tt.terminated || stats.crlf != tt.crlf {
			t.Errorf("countLines(%q) = %+v, want lines=%d terminated=%v crlf=%v",
				tt.content, stats, tt.lines, tt.terminated, tt.crlf)
		}
	}
}
