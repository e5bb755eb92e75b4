package service

import (
	"container/heap"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/shafqatdeveloper/campus-navigator/internal/dto"
)

var (
	// ErrLocationNotFound 地点无法识别
	ErrLocationNotFound = errors.New("无法识别的地点名称")
	// ErrNoPath 两地之间没有可达路径
	ErrNoPath = errors.New("两地之间没有可达路径")
)

// NavigateService A 栋楼内导航
// 拓扑图为静态数据：节点是房间/走廊/地标，边带距离与动作
type NavigateService interface {
	Navigate(from, to string) (*dto.NavigateResponse, error)
	Locations() *dto.LocationListResponse
}

type edge struct {
	distance float64
	action   string
}

type navigateService struct {
	graph   map[string]map[string]edge
	aliases map[string]string
	logger  *zap.Logger
}

// NewNavigateService 创建 NavigateService 实例
func NewNavigateService(logger *zap.Logger) NavigateService {
	return &navigateService{
		graph:   buildCampusGraph(),
		aliases: buildAliases(),
		logger:  logger,
	}
}

func (s *navigateService) Navigate(from, to string) (*dto.NavigateResponse, error) {
	start, ok := s.resolve(from)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, from)
	}
	goal, ok := s.resolve(to)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, to)
	}

	path, dist := s.dijkstra(start, goal)
	if path == nil {
		return nil, ErrNoPath
	}

	return &dto.NavigateResponse{
		From:         start,
		To:           goal,
		Distance:     dist,
		Path:         path,
		Instructions: s.instructions(path),
	}, nil
}

// Locations 所有可导航节点（字母序）
func (s *navigateService) Locations() *dto.LocationListResponse {
	nodes := make([]string, 0, len(s.graph))
	for node := range s.graph {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)
	return &dto.LocationListResponse{Locations: nodes}
}

// resolve 将用户输入解析为规范节点名：先查别名，再做大小写不敏感匹配
func (s *navigateService) resolve(input string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(input))
	if node, ok := s.aliases[key]; ok {
		return node, true
	}
	for node := range s.graph {
		if strings.ToLower(node) == key || strings.ToLower(strings.ReplaceAll(node, "_", " ")) == key {
			return node, true
		}
	}
	return "", false
}

// ── Dijkstra 最短路径 ──

type pqItem struct {
	dist float64
	node string
	path []string
}

type priorityQueue []pqItem

func (q priorityQueue) Len() int            { return len(q) }
func (q priorityQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q priorityQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *priorityQueue) Push(x interface{}) { *q = append(*q, x.(pqItem)) }
func (q *priorityQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

func (s *navigateService) dijkstra(start, goal string) ([]string, float64) {
	pq := &priorityQueue{{dist: 0, node: start, path: []string{start}}}
	visited := make(map[string]bool)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pqItem)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true

		if cur.node == goal {
			return cur.path, cur.dist
		}

		for neighbor, e := range s.graph[cur.node] {
			if visited[neighbor] {
				continue
			}
			path := make([]string, len(cur.path), len(cur.path)+1)
			copy(path, cur.path)
			heap.Push(pq, pqItem{
				dist: cur.dist + e.distance,
				node: neighbor,
				path: append(path, neighbor),
			})
		}
	}
	return nil, 0
}

// instructions 将路径转换为人类可读的行进指引
func (s *navigateService) instructions(path []string) []string {
	if len(path) < 2 {
		return []string{}
	}
	out := make([]string, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		e := s.graph[path[i]][path[i+1]]
		out = append(out, formatInstruction(path[i], path[i+1], e))
	}
	return out
}

func formatInstruction(from, to string, e edge) string {
	dest := strings.ReplaceAll(to, "_", " ")
	switch e.action {
	case "turn_left":
		return fmt.Sprintf("Turn left and walk %.0fm to %s", e.distance, dest)
	case "turn_right":
		return fmt.Sprintf("Turn right and walk %.0fm to %s", e.distance, dest)
	case "stairs_up":
		return fmt.Sprintf("Take the stairs up to %s", dest)
	case "stairs_down":
		return fmt.Sprintf("Take the stairs down to %s", dest)
	default:
		return fmt.Sprintf("Walk straight %.0fm to %s", e.distance, dest)
	}
}

// ── A 栋静态拓扑图 ──

func buildCampusGraph() map[string]map[string]edge {
	return map[string]map[string]edge{
		// 一层
		"Entrance": {
			"Corridor_Main": {5.0, "forward"},
		},
		"Corridor_Main": {
			"Entrance":        {5.0, "forward"},
			"Stairs":          {3.0, "forward"},
			"Faculty_Offices": {4.0, "turn_left"},
			"Accounts_Office": {4.0, "turn_right"},
		},
		"Faculty_Offices": {
			"Corridor_Main":   {4.0, "turn_right"},
			"Director_Office": {6.0, "forward"},
		},
		"Director_Office": {
			"Faculty_Offices": {6.0, "forward"},
		},
		"Accounts_Office": {
			"Corridor_Main": {4.0, "turn_left"},
			"Exam_Branch":   {5.0, "forward"},
		},
		"Exam_Branch": {
			"Accounts_Office": {5.0, "forward"},
		},
		"Stairs": {
			"Corridor_Main":    {3.0, "forward"},
			"Library_Entrance": {2.0, "turn_right"},
			"Floor_1_Corridor": {0.0, "stairs_up"},
		},
		"Library_Entrance": {
			"Stairs":          {2.0, "turn_left"},
			"Digital_Library": {8.0, "forward"},
		},
		"Digital_Library": {
			"Library_Entrance": {8.0, "forward"},
		},

		// 二层
		"Floor_1_Corridor": {
			"Stairs": {0.0, "stairs_down"},
			"CS_Lab": {10.0, "turn_left"},
			"D4":     {7.0, "turn_right"},
		},
		"CS_Lab": {
			"Floor_1_Corridor": {10.0, "turn_right"},
		},
		"D4": {
			"Floor_1_Corridor": {7.0, "turn_left"},
			"C2_5_Classroom":   {5.0, "forward"},
		},
		"C2_5_Classroom": {
			"D4": {5.0, "forward"},
		},
	}
}

func buildAliases() map[string]string {
	return map[string]string{
		"block a":         "Entrance",
		"entrance":        "Entrance",
		"main corridor":   "Corridor_Main",
		"faculty":         "Faculty_Offices",
		"director":        "Director_Office",
		"accounts":        "Accounts_Office",
		"exam":            "Exam_Branch",
		"library":         "Library_Entrance",
		"digital library": "Digital_Library",
		"cs lab":          "CS_Lab",
		"d4":              "D4",
		"c2.5":            "C2_5_Classroom",
		"c2.5 classroom":  "C2_5_Classroom",
	}
}
