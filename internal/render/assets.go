package render

const pageStyle = `
body { font-family: sans-serif; text-align: center; }
#heatmap { display: block; margin: 0 auto; overflow: visible; }
#heatmap .cell:hover { stroke: #000; stroke-width: 1; }
#tooltip {
  position: absolute;
  padding: 6px 10px;
  background: rgba(0, 0, 0, 0.8);
  color: #fff;
  border-radius: 4px;
  font-size: 12px;
  line-height: 1.4;
  pointer-events: none;
  opacity: 0;
}
`

// hoverScript wires the two hover handlers. Both only touch the tooltip, so
// the last event to fire decides its state.
const hoverScript = `
(function () {
  var tooltip = document.getElementById("tooltip");
  var surface = document.getElementById("heatmap");
  function isCell(el) {
    return el && el.classList && el.classList.contains("cell");
  }
  surface.addEventListener("mouseover", function (event) {
    var cell = event.target;
    if (!isCell(cell)) return;
    tooltip.style.opacity = 1;
    tooltip.style.left = event.pageX + 10 + "px";
    tooltip.style.top = event.pageY - 20 + "px";
    tooltip.setAttribute("data-year", cell.getAttribute("data-year"));
    tooltip.innerHTML =
      cell.getAttribute("data-year") + " - " + cell.getAttribute("data-month-name") +
      "<br>Temp: " + cell.getAttribute("data-temp") + "℃" +
      "<br>Variance: " + cell.getAttribute("data-variance") + "℃";
  });
  surface.addEventListener("mouseout", function (event) {
    if (isCell(event.target)) tooltip.style.opacity = 0;
  });
})();
`
