package workspace

import (
	"fmt"
	"sort"
	"strings"

	"github.com/conneroisu/webpulse/internal/types"
)

// LinkPackages sets the internal references of every package: a package
// references another when it depends on a dependency of that exact name.
func LinkPackages(packages []types.PackageRecord) {
	index := make(map[string]int, len(packages))
	for i := range packages {
		if _, ok := index[packages[i].Name]; !ok {
			index[packages[i].Name] = i
		}
	}

	for i := range packages {
		packages[i].Config.References = nil
		for _, dep := range packages[i].Dependencies {
			j, ok := index[dep.Name]
			if !ok || j == i {
				continue
			}
			packages[i].Config.References = append(packages[i].Config.References,
				types.PackageReference{Source: packages[i].Name, Target: dep.Name})
		}
	}
}

// BuildOrder levels packages by their internal references. Level 0 holds
// packages without references and every later level holds packages whose
// references are all satisfied by earlier levels. Packages that can never
// be placed are returned in unplaced, in package order.
func BuildOrder(packages []types.PackageRecord) (levels [][]string, unplaced []string) {
	placed := make(map[string]bool, len(packages))

	for len(levels) < types.MaxPackages {
		var level []string
		for _, pkg := range packages {
			if placed[pkg.Name] || !referencesPlaced(pkg, placed) {
				continue
			}
			level = append(level, pkg.Name)
		}
		if len(level) == 0 {
			break
		}
		for _, name := range level {
			placed[name] = true
		}
		levels = append(levels, level)
	}

	for _, pkg := range packages {
		if !placed[pkg.Name] {
			unplaced = append(unplaced, pkg.Name)
		}
	}
	return levels, unplaced
}

func referencesPlaced(pkg types.PackageRecord, placed map[string]bool) bool {
	for _, ref := range pkg.Config.References {
		if !placed[ref.Target] {
			return false
		}
	}
	return true
}

// CycleMembers returns, sorted, the packages among names that lie on a
// reference cycle.
func CycleMembers(packages []types.PackageRecord, names []string) []string {
	edges := make(map[string][]string, len(packages))
	for _, pkg := range packages {
		for _, ref := range pkg.Config.References {
			edges[pkg.Name] = append(edges[pkg.Name], ref.Target)
		}
	}

	var members []string
	for _, name := range names {
		if reaches(edges, name, name) {
			members = append(members, name)
		}
	}
	sort.Strings(members)
	return members
}

// reaches reports whether target is reachable from start through at least
// one edge.
func reaches(edges map[string][]string, start, target string) bool {
	seen := make(map[string]bool)
	stack := append([]string(nil), edges[start]...)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == target {
			return true
		}
		if seen[node] {
			continue
		}
		seen[node] = true
		stack = append(stack, edges[node]...)
	}
	return false
}

// SharedDependencies returns the dependencies listed by more than one
// package. The version of the first package listing a name wins.
func SharedDependencies(packages []types.PackageRecord) types.DependencyList {
	counts := make(map[string]int)
	for _, pkg := range packages {
		for _, dep := range pkg.Dependencies {
			counts[dep.Name]++
		}
	}

	var shared types.DependencyList
	for _, pkg := range packages {
		for _, dep := range pkg.Dependencies {
			if counts[dep.Name] > 1 {
				shared = shared.Add(dep)
			}
		}
	}
	return shared
}

// finish links packages, computes the build order and shared dependencies.
func (r *resolution) finish() {
	if len(r.ws.Packages) > 0 {
		LinkPackages(r.ws.Packages)

		levels, unplaced := BuildOrder(r.ws.Packages)
		for i, level := range levels {
			r.ws.AddTaskGroup(types.TaskGroup{
				Name:     fmt.Sprintf("build-level-%d", i+1),
				Type:     types.TaskGroupBuild,
				Packages: level,
			})
		}
		if members := CycleMembers(r.ws.Packages, unplaced); len(members) > 0 {
			r.project.AddIssue(
				fmt.Sprintf("Dependency cycle prevents build ordering for packages: %s", strings.Join(members, ", ")),
				r.root)
		}

		for _, dep := range SharedDependencies(r.ws.Packages) {
			r.ws.SharedDependencies = r.ws.SharedDependencies.Add(dep)
		}
	}
	for _, dep := range r.globals {
		r.ws.SharedDependencies = r.ws.SharedDependencies.Add(dep)
	}

	sort.SliceStable(r.ws.SharedDependencies, func(i, j int) bool {
		return r.ws.SharedDependencies[i].Name < r.ws.SharedDependencies[j].Name
	})
}
